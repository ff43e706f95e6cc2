package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// localStorage implements the Storage interface on a directory tree. Keys map
// to file paths relative to the root; slashes in keys become subdirectories.
type localStorage struct {
	root string
}

// NewLocal creates a filesystem-backed Storage rooted at the given directory.
// The directory is created if missing.
func NewLocal(root string) (Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("local storage path is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &localStorage{root: abs}, nil
}

// Put writes the object to disk, creating parent directories as needed.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	path, err := l.safeJoin(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create object file: %w", err)
	}
	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return ObjectInfo{}, fmt.Errorf("write object: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return ObjectInfo{}, fmt.Errorf("close object file: %w", err)
	}

	return ObjectInfo{
		Key:          key,
		Size:         n,
		ContentType:  opt.ContentType,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get opens the object file for streaming reads.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	path, err := l.safeJoin(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ObjectInfo{}, fmt.Errorf("object %s not found", key)
		}
		return nil, ObjectInfo{}, fmt.Errorf("open object: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("stat object: %w", err)
	}
	info := ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  contentTypeByExt(path),
		LastModified: st.ModTime(),
	}
	return f, info, nil
}

// Delete removes the object file.
func (l *localStorage) Delete(ctx context.Context, key string) error {
	path, err := l.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("object %s not found", key)
		}
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// PresignGet returns a file URL for the object. Local files need no
// credentials, so the expiry is ignored.
func (l *localStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	path, err := l.safeJoin(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("object %s not found", key)
		}
		return "", fmt.Errorf("stat object: %w", err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String(), nil
}

// safeJoin resolves key relative to the root and rejects directory traversal.
func (l *localStorage) safeJoin(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	abs, err := filepath.Abs(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("invalid object key: %w", err)
	}
	if !strings.HasPrefix(abs, l.root+string(filepath.Separator)) {
		return "", fmt.Errorf("object key escapes storage root")
	}
	return abs, nil
}

func contentTypeByExt(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
