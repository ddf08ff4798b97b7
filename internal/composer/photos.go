package composer

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathanTyoung/wayfare-client/internal/schema"
)

// SelectedFile is a locally selected image before it enters the buffer.
type SelectedFile struct {
	Name    string
	Content []byte
}

// Photo is a buffered attachment with its derived preview handle.
type Photo struct {
	ID          string
	Filename    string
	ContentType string
	Content     []byte
	// PreviewURL is a data URL usable for local display before upload.
	PreviewURL string
}

// PhotoUploader is the slice of the journal API the buffer consumes.
type PhotoUploader interface {
	UploadPhotos(ctx context.Context, postID int64, photos []schema.PhotoUpload) ([]schema.PhotoMeta, error)
}

// PhotoBuffer holds locally selected images until the owning post's
// identifier is known; the upload endpoint requires an existing post.
type PhotoBuffer struct {
	mu     sync.Mutex
	photos []Photo
}

// Attach replaces the buffer wholesale with the given files and derives
// one preview handle per file. It is not additive.
func (b *PhotoBuffer) Attach(files []SelectedFile) {
	photos := make([]Photo, 0, len(files))
	for _, file := range files {
		contentType := http.DetectContentType(file.Content)
		photos = append(photos, Photo{
			ID:          uuid.NewString(),
			Filename:    file.Name,
			ContentType: contentType,
			Content:     file.Content,
			PreviewURL:  fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(file.Content)),
		})
	}

	b.mu.Lock()
	b.photos = photos
	b.mu.Unlock()
}

// AttachPaths reads the given files from disk and attaches them.
func (b *PhotoBuffer) AttachPaths(paths []string) error {
	files := make([]SelectedFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, SelectedFile{Name: filepath.Base(path), Content: content})
	}
	b.Attach(files)
	return nil
}

// Len returns the number of buffered photos.
func (b *PhotoBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.photos)
}

// Photos returns a copy of the buffered photos.
func (b *PhotoBuffer) Photos() []Photo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Photo(nil), b.photos...)
}

// Consume uploads the buffered files keyed by the owning post. The
// buffer is kept on failure so a retry does not require re-selecting the
// files; it is cleared only after a successful upload.
func (b *PhotoBuffer) Consume(ctx context.Context, postID int64, uploader PhotoUploader) ([]schema.PhotoMeta, error) {
	b.mu.Lock()
	uploads := make([]schema.PhotoUpload, 0, len(b.photos))
	for _, photo := range b.photos {
		uploads = append(uploads, schema.PhotoUpload{
			Filename:    photo.Filename,
			ContentType: photo.ContentType,
			Content:     photo.Content,
		})
	}
	b.mu.Unlock()

	metas, err := uploader.UploadPhotos(ctx, postID, uploads)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.photos = nil
	b.mu.Unlock()
	return metas, nil
}
