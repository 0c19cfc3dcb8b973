package core

import (
	"encoding/base64"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// AttachmentResult is the outcome of a one-shot attachment read.
type AttachmentResult struct {
	ControlID string
	Name      string
	DataURL   string
	Err       error
}

// AttachmentLoader performs the one-shot asynchronous file read that backs
// logo and attachment uploads. It is a single-slot task: issuing a new read
// supersedes tracking of the previous one, and only the most recently issued
// read's completion is applied. Reads are not cancellable; a superseded read
// simply has its result dropped when it completes.
type AttachmentLoader struct {
	mu    sync.Mutex
	seq   uint64
	apply func(AttachmentResult)
	log   zerolog.Logger

	// Injectable for tests exercising out-of-order completion
	readFile func(path string) ([]byte, error)
}

// NewAttachmentLoader creates a loader delivering completed reads to apply.
func NewAttachmentLoader(apply func(AttachmentResult), log zerolog.Logger) *AttachmentLoader {
	return &AttachmentLoader{
		apply:    apply,
		log:      log,
		readFile: os.ReadFile,
	}
}

// Load issues a read of path on behalf of controlID. The returned channel
// closes when the read completes, whether or not its result was applied.
func (l *AttachmentLoader) Load(controlID, path string) <-chan struct{} {
	l.mu.Lock()
	l.seq++
	ticket := l.seq
	l.mu.Unlock()

	done := make(chan struct{})

	go func() {
		defer close(done)

		result := AttachmentResult{ControlID: controlID, Name: filepath.Base(path)}

		data, err := l.readFile(path)
		if err != nil {
			result.Err = err
		} else {
			result.DataURL = EncodeDataURL(result.Name, data)
		}

		l.mu.Lock()
		latest := ticket == l.seq
		l.mu.Unlock()

		if !latest {
			l.log.Debug().Str("path", path).Msg("superseded attachment read dropped")
			return
		}

		l.apply(result)
	}()

	return done
}

// EncodeDataURL inlines file content as a base64 data URL, the only storage
// form attachments have. The media type comes from the file extension, with
// content sniffing as the fallback.
func EncodeDataURL(name string, data []byte) string {
	mediaType := mime.TypeByExtension(filepath.Ext(name))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
