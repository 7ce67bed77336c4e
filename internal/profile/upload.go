package profile

import (
	"context"
	"sync"

	"github.com/Varun5711/wecare/internal/api"
)

// Uploader is the picture dialog state. It is independent of the Editor so a
// text save and an upload can run side by side.
type Uploader struct {
	mu        sync.Mutex
	uploading bool
	err       string
}

func (u *Uploader) Uploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

func (u *Uploader) Err() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Upload reads and prepares the file at path, then hands it to send.
func (u *Uploader) Upload(ctx context.Context, path string, send func(ctx context.Context, filename string, data []byte) (string, error)) (string, error) {
	u.mu.Lock()
	u.uploading = true
	u.err = ""
	u.mu.Unlock()

	msg, err := u.upload(ctx, path, send)

	u.mu.Lock()
	u.uploading = false
	if err != nil {
		u.err = api.Message(err)
	}
	u.mu.Unlock()

	return msg, err
}

func (u *Uploader) upload(ctx context.Context, path string, send func(ctx context.Context, filename string, data []byte) (string, error)) (string, error) {
	name, data, err := ReadImage(path)
	if err != nil {
		return "", err
	}
	msg, err := send(ctx, name, data)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Profile picture updated"
	}
	return msg, nil
}
