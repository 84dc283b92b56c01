package attach

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Write([]byte("png-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher()
	files := f.Recover([]*discordgo.MessageAttachment{
		{Filename: "ok.png", URL: srv.URL + "/ok.png", Size: 9},
		{Filename: "gone.png", URL: srv.URL + "/gone.png", Size: 9},
	})

	require.Len(t, files, 1, "failed downloads are skipped, not fatal")
	assert.Equal(t, "ok.png", files[0].Name)

	body, err := io.ReadAll(files[0].Reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
}

func TestRecoverSkipsOversized(t *testing.T) {
	f := NewFetcher()

	files := f.Recover([]*discordgo.MessageAttachment{
		{Filename: "huge.bin", URL: "http://127.0.0.1:1/huge.bin", Size: maxFileBytes + 1},
	})
	assert.Empty(t, files, "oversized attachments are not even fetched")
}

func TestRecoverCapsFileCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	var atts []*discordgo.MessageAttachment
	for i := 0; i < maxFiles+2; i++ {
		atts = append(atts, &discordgo.MessageAttachment{Filename: "a.png", URL: srv.URL, Size: 1})
	}

	files := NewFetcher().Recover(atts)
	assert.Len(t, files, maxFiles)
}
