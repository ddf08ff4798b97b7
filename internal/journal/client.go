package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathanTyoung/wayfare-client/internal/schema"
	"github.com/jonathanTyoung/wayfare-client/internal/session"
)

// ErrSessionExpired is returned when the API rejects the session token.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-success response from the journal API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("journal api returned status %d: %s", e.StatusCode, e.Message)
}

// Client is the REST client for the wayfare journal API. Every request
// carries the session's token; the remote server owns all persistence.
type Client struct {
	logger     *zap.SugaredLogger
	httpClient *http.Client
	baseURL    string
	session    *session.Session
}

// NewClient creates a journal API client bound to a session.
func NewClient(logger *zap.SugaredLogger, baseURL string, sess *session.Session, timeout time.Duration) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		session:    sess,
	}
}

// CreatePost creates a new journal post and returns the stored record.
func (c *Client) CreatePost(ctx context.Context, req *schema.CreatePostRequest) (*schema.Post, error) {
	post := &schema.Post{}
	if err := c.doJSON(ctx, http.MethodPost, "/posts", req, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost updates an existing post and returns the updated record.
func (c *Client) UpdatePost(ctx context.Context, postID int64, req *schema.CreatePostRequest) (*schema.Post, error) {
	post := &schema.Post{}
	path := fmt.Sprintf("/posts/%d", postID)
	if err := c.doJSON(ctx, http.MethodPatch, path, req, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost fetches a single post by id.
func (c *Client) GetPost(ctx context.Context, postID int64) (*schema.Post, error) {
	post := &schema.Post{}
	path := fmt.Sprintf("/posts/%d", postID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetCategories fetches the selectable post categories.
func (c *Client) GetCategories(ctx context.Context) ([]schema.Category, error) {
	var categories []schema.Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// DeletePhoto removes a previously uploaded photo.
func (c *Client) DeletePhoto(ctx context.Context, photoID int64) error {
	path := fmt.Sprintf("/photos/%d", photoID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// LoadEditData fetches the post under edit and the category list
// concurrently, which is the composer's bootstrap for edit mode.
func (c *Client) LoadEditData(ctx context.Context, postID int64) (*schema.Post, []schema.Category, error) {
	var (
		post       *schema.Post
		categories []schema.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		post, err = c.GetPost(gctx, postID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = c.GetCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return post, categories, nil
}

// doJSON performs a request with a JSON body (when payload is non-nil)
// and decodes the response into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "contacting journal api")
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decoding response")
		}
	}
	return nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.session.Authorization())
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// checkStatus maps non-success responses to errors. A 401 becomes
// ErrSessionExpired so callers can prompt for a fresh login instead of
// showing a generic failure.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warnw("Session rejected by journal api")
		return ErrSessionExpired
	}
	return &APIError{StatusCode: resp.StatusCode, Message: string(message)}
}
