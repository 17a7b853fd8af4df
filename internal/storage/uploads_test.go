package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	u, err := NewUploads(dir)
	require.NoError(t, err)

	fh := multipartFile(t, "carImage", "car.jpg", "fake image bytes")
	ref, err := u.Save(fh)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, RefPrefix))
	require.True(t, strings.HasSuffix(ref, ".jpg"))

	// The stored name is random, never the client's filename.
	require.NotContains(t, ref, "car.jpg")

	path := filepath.Join(dir, strings.TrimPrefix(ref, RefPrefix))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(data))

	u.Remove(ref)
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestRemoveIgnoresForeignRefs(t *testing.T) {
	dir := t.TempDir()
	u, err := NewUploads(dir)
	require.NoError(t, err)

	outside := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	// Refs outside the upload prefix are left alone.
	u.Remove("https://cdn.example.com/image.jpg")
	u.Remove("")
	_, err = os.Stat(outside)
	require.NoError(t, err)
}

func TestNewUploadsCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewUploads(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
