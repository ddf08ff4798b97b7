package journal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathanTyoung/wayfare-client/internal/schema"
	"github.com/jonathanTyoung/wayfare-client/internal/session"
)

func newTestClient(t *testing.T, router *gin.Engine) *Client {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	sess, err := session.FromToken("test-token")
	require.NoError(t, err)

	return NewClient(zap.NewNop().Sugar(), server.URL, sess, time.Second)
}

func validRequest() *schema.CreatePostRequest {
	return &schema.CreatePostRequest{
		Title:            "Sunrise at Angkor",
		ShortDescription: "Up at 4am, worth it",
		Location:         "Siem Reap, Cambodia",
		Categories:       []int64{2},
	}
}

func TestCreatePostSendsTokenAndDecodesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/posts", func(c *gin.Context) {
		assert.Equal(t, "Token test-token", c.GetHeader("Authorization"))
		assert.NotEmpty(t, c.GetHeader("X-Request-ID"))

		var req schema.CreatePostRequest
		require.NoError(t, c.ShouldBindJSON(&req))
		assert.Equal(t, "Sunrise at Angkor", req.Title)

		c.JSON(http.StatusCreated, gin.H{"id": 42, "title": req.Title})
	})

	client := newTestClient(t, router)
	post, err := client.CreatePost(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), post.ID)
}

func TestUpdatePostPatchesByID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PATCH("/posts/:postId", func(c *gin.Context) {
		assert.Equal(t, "7", c.Param("postId"))
		c.JSON(http.StatusOK, gin.H{"id": 7})
	})

	client := newTestClient(t, router)
	post, err := client.UpdatePost(context.Background(), 7, validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), post.ID)
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/posts", func(c *gin.Context) {
		c.String(http.StatusUnauthorized, "invalid token")
	})

	client := newTestClient(t, router)
	_, err := client.CreatePost(context.Background(), validRequest())

	assert.True(t, errors.Is(err, ErrSessionExpired))
}

func TestBadRequestSurfacesAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/posts", func(c *gin.Context) {
		c.String(http.StatusBadRequest, "title too long")
	})

	client := newTestClient(t, router)
	_, err := client.CreatePost(context.Background(), validRequest())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "title too long")
}

func TestUploadPhotosSendsMultipartFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/posts/:postId/upload_photo", func(c *gin.Context) {
		assert.Equal(t, "42", c.Param("postId"))
		assert.Equal(t, "Token test-token", c.GetHeader("Authorization"))

		form, err := c.MultipartForm()
		require.NoError(t, err)
		files := form.File["file"]
		require.Len(t, files, 2)
		assert.Equal(t, "one.jpg", files[0].Filename)
		assert.Equal(t, "two.png", files[1].Filename)

		c.JSON(http.StatusOK, []gin.H{{"id": 1, "url": "/p/1"}, {"id": 2, "url": "/p/2"}})
	})

	client := newTestClient(t, router)
	metas, err := client.UploadPhotos(context.Background(), 42, []schema.PhotoUpload{
		{Filename: "one.jpg", ContentType: "image/jpeg", Content: []byte("jpeg-bytes")},
		{Filename: "two.png", ContentType: "image/png", Content: []byte("png-bytes")},
	})

	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "/p/1", metas[0].URL)
}

func TestLoadEditDataFetchesPostAndCategories(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/posts/:postId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": 7, "title": "Old title"})
	})
	router.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{{"id": 1, "label": "Hiking"}, {"id": 2, "label": "Food"}})
	})

	client := newTestClient(t, router)
	post, categories, err := client.LoadEditData(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), post.ID)
	require.Len(t, categories, 2)
	assert.Equal(t, "Hiking", categories[0].Label)
}

func TestLoadEditDataFailsWhenEitherCallFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/posts/:postId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": 7})
	})
	router.GET("/categories", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})

	client := newTestClient(t, router)
	_, _, err := client.LoadEditData(context.Background(), 7)

	assert.Error(t, err)
}
