package changes

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelSnap struct {
	Name       string
	Topic      string
	Position   int
	Overwrites []string
	Bitmask    int64
}

type userSnap struct {
	Username string
	Avatar   string
}

type memberSnap struct {
	User  userSnap
	Nick  string
	Roles []string
}

var channelTestPolicy = Policy{
	Suppressed:  []string{"Overwrites"},
	Unsupported: []string{"Bitmask"},
}

func TestSummarizeNoChanges(t *testing.T) {
	snap := channelSnap{Name: "general", Topic: "chat", Position: 3}

	entries, err := Summarize(snap, snap, channelTestPolicy)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummarizeValueChange(t *testing.T) {
	before := channelSnap{Name: "general", Position: 3}
	after := channelSnap{Name: "lounge", Position: 3}

	entries, err := Summarize(before, after, channelTestPolicy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name: `general` -> `lounge`"}, entries)
}

func TestSummarizeSuppressedField(t *testing.T) {
	before := channelSnap{Overwrites: []string{"a"}}
	after := channelSnap{Overwrites: []string{"b", "c"}}

	entries, err := Summarize(before, after, channelTestPolicy)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummarizeUnsupportedField(t *testing.T) {
	before := channelSnap{Bitmask: 0x10}
	after := channelSnap{Bitmask: 0x8010}

	entries, err := Summarize(before, after, channelTestPolicy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bitmask: updated"}, entries)
}

func TestSummarizeDeduplicatesByKey(t *testing.T) {
	// Several element-level changes under one slice field must collapse
	// into a single description for that field.
	type snap struct {
		Tags []string
	}
	before := snap{Tags: []string{"a", "b", "c"}}
	after := snap{Tags: []string{"x", "y", "z"}}

	entries, err := Summarize(before, after, Policy{Unsupported: []string{"Tags"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tags: updated"}, entries)
}

func TestSummarizeSortsEntries(t *testing.T) {
	before := channelSnap{Name: "general", Topic: "hello", Position: 1}
	after := channelSnap{Name: "lounge", Topic: "goodbye", Position: 2}

	entries, err := Summarize(before, after, channelTestPolicy)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, sort.StringsAreSorted(entries))
}

func TestSummarizeStripPrefix(t *testing.T) {
	before := memberSnap{User: userSnap{Username: "old"}, Nick: "n"}
	after := memberSnap{User: userSnap{Username: "new"}, Nick: "n"}

	entries, err := Summarize(before, after, Policy{StripPrefix: []string{"User"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Username: `old` -> `new`"}, entries)
}

func TestSummarizeRoleSetDifference(t *testing.T) {
	names := map[string]string{"1": "A", "2": "B", "3": "C"}
	policy := Policy{
		StripPrefix: []string{"User"},
		RoleKey:     "Roles",
		RolesOf: func(v interface{}) []Role {
			m := v.(memberSnap)
			roles := make([]Role, 0, len(m.Roles))
			for _, id := range m.Roles {
				roles = append(roles, Role{ID: id, Name: names[id]})
			}
			return roles
		},
	}

	before := memberSnap{Roles: []string{"1", "2"}}
	after := memberSnap{Roles: []string{"2", "3"}}

	entries, err := Summarize(before, after, policy)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Role added: C (`3`)",
		"Role removed: A (`1`)",
	}, entries)
}

func TestFieldKey(t *testing.T) {
	tests := []struct {
		name  string
		path  []string
		strip []string
		want  string
	}{
		{"empty path", nil, nil, ""},
		{"plain", []string{"Name"}, nil, "Name"},
		{"nested", []string{"Roles", "0"}, nil, "Roles"},
		{"strip wrapper", []string{"User", "Username"}, []string{"User"}, "Username"},
		{"stripped to nothing", []string{"User"}, []string{"User"}, ""},
		{"inline index marker", []string{"Roles[2]"}, nil, "Roles"},
		{"inline attr marker", []string{"Owner.ID"}, nil, "Owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldKey(tt.path, tt.strip))
		})
	}
}

func TestRender(t *testing.T) {
	body := Render([]string{"Name: `a` -> `b`", "Topic: updated"})
	assert.Equal(t, "• Name: `a` -> `b`\n• Topic: updated\n", body)
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render(nil))
}
