package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laudoapi/internal/config"
)

const testContentType = "application/test"

func newTestLocal(t *testing.T) (Storage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocal(dir, testContentType)
	require.NoError(t, err)
	return s, dir
}

func TestNewLocal(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		_, err := NewLocal(t.TempDir(), testContentType)
		assert.NoError(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewLocal("", testContentType)
		assert.Error(t, err)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewLocal(filepath.Join(t.TempDir(), "missing"), testContentType)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("path is a file", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
		_, err := NewLocal(f, testContentType)
		assert.Error(t, err)
	})
}

func TestLocal_PutGet(t *testing.T) {
	s, dir := newTestLocal(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "report.docx", strings.NewReader("hello"), PutObjectOptions{
		Size:        5,
		ContentType: "text/plain",
		Metadata:    map[string]string{"k": "v"},
	})
	require.NoError(t, err)
	assert.Equal(t, "report.docx", info.Key)
	assert.Equal(t, int64(5), info.Size)
	assert.Equal(t, "text/plain", info.ContentType)
	assert.False(t, info.LastModified.IsZero())

	rc, got, err := s.Get(ctx, "report.docx")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, int64(5), got.Size)
	assert.Equal(t, testContentType, got.ContentType)

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.docx", entries[0].Name())
}

func TestLocal_NotFound(t *testing.T) {
	s, _ := newTestLocal(t)
	ctx := context.Background()

	_, err := s.Stat(ctx, "missing.docx")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, _, err = s.Get(ctx, "missing.docx")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocal_InvalidKey(t *testing.T) {
	s, _ := newTestLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../etc/passwd", "a/b", `a\b`} {
		_, err := s.Stat(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)

		_, err = s.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{})
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestLocal_PutReaderError(t *testing.T) {
	s, dir := newTestLocal(t)

	_, err := s.Put(context.Background(), "broken.docx", failingReader{}, PutObjectOptions{})
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocal_ConcurrentPuts(t *testing.T) {
	s, dir := newTestLocal(t)
	ctx := context.Background()

	keys := []string{"a.docx", "b.docx", "c.docx", "d.docx"}
	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			_, err := s.Put(ctx, k, strings.NewReader(k), PutObjectOptions{})
			assert.NoError(t, err)
		}(k)
	}
	wg.Wait()

	for _, k := range keys {
		b, err := os.ReadFile(filepath.Join(dir, k))
		require.NoError(t, err)
		assert.Equal(t, k, string(b))
	}
}

func TestLocal_Ping(t *testing.T) {
	s, dir := newTestLocal(t)
	assert.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, s.Ping(context.Background()))
}

func TestLocal_CanceledContext(t *testing.T) {
	s, _ := newTestLocal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "x.docx", strings.NewReader("x"), PutObjectOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranslateMinIOError(t *testing.T) {
	assert.ErrorIs(t, translateMinIOError(minio.ErrorResponse{Code: "NoSuchKey"}), ErrObjectNotFound)

	other := minio.ErrorResponse{Code: "AccessDenied"}
	assert.Equal(t, error(other), translateMinIOError(other))
}

func TestNewMinIO_Validation(t *testing.T) {
	_, err := NewMinIO(minioConfig("", "a", "s", "b"))
	assert.EqualError(t, err, "minio endpoint is required")

	_, err = NewMinIO(minioConfig("localhost:9000", "", "s", "b"))
	assert.EqualError(t, err, "minio credentials are required")

	_, err = NewMinIO(minioConfig("localhost:9000", "a", "s", ""))
	assert.EqualError(t, err, "minio bucket is required")
}

func minioConfig(endpoint, access, secret, bucket string) config.MinIOConfig {
	return config.MinIOConfig{Endpoint: endpoint, AccessKey: access, SecretKey: secret, Bucket: bucket}
}
