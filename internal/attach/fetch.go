// Package attach re-downloads attachments of just-deleted messages so the
// log notice can carry the original files. CDN links stay valid for a short
// time after deletion; anything that cannot be fetched is skipped.
package attach

import (
	"bytes"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/valyala/fasthttp"

	"go-modlog/internal/logging"
)

const (
	maxFileBytes = 8 << 20
	maxFiles     = 3
	fetchTimeout = 10 * time.Second
)

type Fetcher struct {
	client   *fasthttp.Client
	maxBytes int
	maxFiles int
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &fasthttp.Client{
			ReadTimeout:         fetchTimeout,
			WriteTimeout:        fetchTimeout,
			MaxResponseBodySize: maxFileBytes,
		},
		maxBytes: maxFileBytes,
		maxFiles: maxFiles,
	}
}

// Recover downloads up to maxFiles attachments, best effort. Failures are
// logged at debug and never surface; the notice still carries the
// attachment count line either way.
func (f *Fetcher) Recover(attachments []*discordgo.MessageAttachment) []*discordgo.File {
	var files []*discordgo.File

	for _, a := range attachments {
		if len(files) >= f.maxFiles {
			break
		}
		if a.Size > f.maxBytes {
			logging.Debug("[ATTACH] Skipping %s: %d bytes over limit", a.Filename, a.Size)
			continue
		}

		status, body, err := f.client.GetTimeout(nil, a.URL, fetchTimeout)
		if err != nil || status != fasthttp.StatusOK {
			logging.Debug("[ATTACH] Fetch failed for %s (status %d): %v", a.Filename, status, err)
			continue
		}

		// fasthttp reuses response buffers, so the body must be copied.
		buf := make([]byte, len(body))
		copy(buf, body)

		files = append(files, &discordgo.File{
			Name:        a.Filename,
			ContentType: a.ContentType,
			Reader:      bytes.NewReader(buf),
		})
	}

	return files
}
