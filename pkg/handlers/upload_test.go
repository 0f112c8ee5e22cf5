package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/apperrors"
	"github.com/askdata-labs/askdata-engine/pkg/models"
)

func multipartUpload(t *testing.T, filename, mediaType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", mediaType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func newUploadServer(extractor *fakeExtractor, store *fakeStore) *http.ServeMux {
	mux := http.NewServeMux()
	NewUploadHandler(extractor, store, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestUpload_Success(t *testing.T) {
	extractor := &fakeExtractor{chunks: []models.Chunk{
		{ID: "notes.txt-chunk-0", Content: "hello"},
	}}
	store := &fakeStore{}
	mux := newUploadServer(extractor, store)

	body, contentType := multipartUpload(t, "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "notes.txt", extractor.lastName)
	assert.Equal(t, "text/plain", extractor.lastType)
	assert.Len(t, store.added, 1)
	assert.Contains(t, rec.Body.String(), `"message":"File uploaded successfully"`)
	assert.Contains(t, rec.Body.String(), `"chunks":1`)
}

func TestUpload_MissingFile(t *testing.T) {
	mux := newUploadServer(&fakeExtractor{}, &fakeStore{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file provided")
}

func TestUpload_UnsupportedMediaType(t *testing.T) {
	extractor := &fakeExtractor{err: apperrors.ErrUnsupportedMediaType}
	store := &fakeStore{}
	mux := newUploadServer(extractor, store)

	body, contentType := multipartUpload(t, "report.pdf", "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid file type. Please upload TXT or MD files only.")
	assert.Empty(t, store.added)
}

func TestUpload_OversizedFileRejected(t *testing.T) {
	mux := newUploadServer(&fakeExtractor{}, &fakeStore{})

	body, contentType := multipartUpload(t, "big.txt", "text/plain", bytes.Repeat([]byte("a"), maxUploadBytes+1))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "File size must be less than 10MB")
}

func TestUpload_StoreFailure(t *testing.T) {
	extractor := &fakeExtractor{chunks: []models.Chunk{{ID: "a-chunk-0"}}}
	store := &fakeStore{addErr: errors.New("embedding endpoint unreachable")}
	mux := newUploadServer(extractor, store)

	body, contentType := multipartUpload(t, "a.txt", "text/plain", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to store document")
}
