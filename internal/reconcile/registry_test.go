package reconcile

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIgnoreDeletionsConsumedOnce(t *testing.T) {
	r := NewRegistry()
	r.IgnoreDeletions("42")

	assert.True(t, r.ConsumeIgnored("42"))
	assert.False(t, r.ConsumeIgnored("42"), "consumed entries must not match again")
}

func TestIgnoreDeletionsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.IgnoreDeletions("42", "42", "42")

	assert.True(t, r.ConsumeIgnored("42"))
	assert.False(t, r.ConsumeIgnored("42"))
}

func TestConsumeUnknownID(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.ConsumeIgnored("7"))
	assert.False(t, r.ConsumeDeleteSeen("7"))
	assert.False(t, r.ConsumeEditSeen("7"))
}

func TestSeenSetsAreIndependent(t *testing.T) {
	r := NewRegistry()
	r.MarkDeleteSeen("1")
	r.MarkEditSeen("2")

	assert.False(t, r.ConsumeEditSeen("1"))
	assert.False(t, r.ConsumeDeleteSeen("2"))
	assert.True(t, r.ConsumeDeleteSeen("1"))
	assert.True(t, r.ConsumeEditSeen("2"))
}

func TestSetsAreBounded(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < setCapacity*2; i++ {
		r.MarkDeleteSeen(strconv.Itoa(i))
	}

	assert.LessOrEqual(t, r.seenDeletes.Len(), setCapacity)
}

func TestGracePeriodIsOneSecond(t *testing.T) {
	assert.Equal(t, time.Second, GracePeriod)
}
