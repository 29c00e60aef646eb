package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartFileHeader builds a FileHeader the way gin hands one to a service
func multipartFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")

	_, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveFile(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	header := multipartFileHeader(t, "lecture_slides.pdf", "pdf-bytes")

	url, err := storage.SaveFile(header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))
	// Stored names are generated, never the client's filename
	assert.NotContains(t, url, "lecture_slides")

	stored := filepath.Join(base, filepath.Base(url))
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
}

func TestSaveFile_NilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestSaveFile_UniqueNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	first, err := storage.SaveFile(multipartFileHeader(t, "notes.txt", "a"))
	require.NoError(t, err)
	second, err := storage.SaveFile(multipartFileHeader(t, "notes.txt", "b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveFileWithPath_Subdirectory(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(multipartFileHeader(t, "week3.pdf", "slides"), "materials")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/materials/"))

	stored := filepath.Join(base, "materials", filepath.Base(url))
	_, err = os.Stat(stored)
	assert.NoError(t, err)
}

func TestSaveFile_NoBaseURL(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	url, err := storage.SaveFile(multipartFileHeader(t, "notes.txt", "n"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "uploads"+string(filepath.Separator)))
}

func TestDeleteFile(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFile(multipartFileHeader(t, "old.pdf", "stale"))
	require.NoError(t, err)
	stored := filepath.Join(base, filepath.Base(url))

	require.NoError(t, storage.DeleteFile(url))
	_, statErr := os.Stat(stored)
	assert.True(t, os.IsNotExist(statErr))

	// Deleting again stays idempotent
	assert.NoError(t, storage.DeleteFile(url))
}

func TestDeleteFile_EdgeCases(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.NoError(t, storage.DeleteFile(""))
	assert.Error(t, storage.DeleteFile("uploads"))
}

func TestGetFullPath(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	full := storage.GetFullPath("/uploads/9a1f.pdf")
	assert.Equal(t, filepath.Join(base, "9a1f.pdf"), full)
}
