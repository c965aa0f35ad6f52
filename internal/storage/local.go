package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// localStorage implements Storage on a single local directory. Keys are plain
// file names; content type is not persisted and is reported from the caller's
// configured default.
type localStorage struct {
	dir         string
	contentType string
}

// NewLocal returns a Storage writing into dir. The directory must already
// exist and be writable; this is checked once, here.
func NewLocal(dir, contentType string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("output directory %q: %w", dir, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("output directory %q is not a directory", dir)
	}

	ls := &localStorage{dir: dir, contentType: contentType}
	if err := ls.Ping(context.Background()); err != nil {
		return nil, err
	}
	return ls, nil
}

func (l *localStorage) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", ErrInvalidKey
	}
	return filepath.Join(l.dir, key), nil
}

// Put writes to a temporary file in the same directory and renames it into place.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	dst, err := l.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	tmp, err := os.CreateTemp(l.dir, ".tmp-"+key+"-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return ObjectInfo{}, fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return ObjectInfo{}, fmt.Errorf("close object: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // documents are meant to be shared
		_ = os.Remove(tmpName)
		return ObjectInfo{}, fmt.Errorf("chmod object: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return ObjectInfo{}, fmt.Errorf("rename object: %w", err)
	}

	ct := opt.ContentType
	if ct == "" {
		ct = l.contentType
	}
	info, err := l.Stat(ctx, key)
	if err != nil {
		return ObjectInfo{}, err
	}
	info.Size = n
	info.ContentType = ct
	info.Metadata = opt.Metadata
	return info, nil
}

// Get opens the file for streaming. Callers must close the reader.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	info, err := l.Stat(ctx, key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	p, _ := l.path(key)
	f, err := os.Open(p) //nolint:gosec // key validated by path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, err
	}
	return f, info, nil
}

func (l *localStorage) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	p, err := l.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	st, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ObjectInfo{}, ErrObjectNotFound
		}
		return ObjectInfo{}, err
	}
	if !st.Mode().IsRegular() {
		return ObjectInfo{}, ErrObjectNotFound
	}
	return ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  l.contentType,
		LastModified: st.ModTime(),
	}, nil
}

// Ping checks the directory is still writable by creating and removing a probe file.
func (l *localStorage) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.CreateTemp(l.dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("output directory %q is not writable: %w", l.dir, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
