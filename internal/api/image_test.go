package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUploader struct {
	url         string
	err         error
	gotSize     int
	contentType string
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	f.gotSize = len(data)
	f.contentType = contentType
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func multipartImage(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func setupImageRouter(uploader *fakeUploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewImageHandler(uploader, zap.NewNop())
	router.POST("/images", handler.Upload)
	return router
}

func TestImageUpload(t *testing.T) {
	uploader := &fakeUploader{url: "https://bucket.s3.amazonaws.com/recipe-images/x.png"}
	router := setupImageRouter(uploader)

	body, contentType := multipartImage(t, "image", "soup.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), uploader.url)
	assert.Equal(t, len("png-bytes"), uploader.gotSize)
	assert.Equal(t, "image/png", uploader.contentType)
}

func TestImageUploadMissingFile(t *testing.T) {
	router := setupImageRouter(&fakeUploader{})

	req := httptest.NewRequest(http.MethodPost, "/images", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
