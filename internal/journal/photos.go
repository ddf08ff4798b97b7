package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/pkg/errors"

	"github.com/jonathanTyoung/wayfare-client/internal/schema"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadPhotos attaches the given photos to an existing post. The
// endpoint requires the post to exist, so this is always the second
// phase of a submission. A failure here must not be conflated with a
// post-write failure by callers.
func (c *Client) UploadPhotos(ctx context.Context, postID int64, photos []schema.PhotoUpload) ([]schema.PhotoMeta, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, photo := range photos {
		part, err := createImagePart(writer, photo)
		if err != nil {
			return nil, errors.Wrap(err, "building upload body")
		}
		if _, err := part.Write(photo.Content); err != nil {
			return nil, errors.Wrap(err, "building upload body")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "building upload body")
	}

	uploadURL := fmt.Sprintf("%s/posts/%d/upload_photo", c.baseURL, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "building upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "uploading photos")
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var metas []schema.PhotoMeta
	if err := json.NewDecoder(resp.Body).Decode(&metas); err != nil {
		return nil, errors.Wrap(err, "decoding upload response")
	}

	c.logger.Infow("Photos uploaded", "post_id", postID, "count", len(photos))
	return metas, nil
}

// createImagePart writes a form part named "file" carrying the photo's
// real content type, which mime/multipart's CreateFormFile would
// otherwise hardcode to application/octet-stream.
func createImagePart(writer *multipart.Writer, photo schema.PhotoUpload) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(photo.Filename)))
	if photo.ContentType != "" {
		header.Set("Content-Type", photo.ContentType)
	}
	return writer.CreatePart(header)
}
