// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps images on the local filesystem below a public root.
type LocalStore struct {
	root   string
	prefix string
}

// NewLocalStore prepares root/prefix for writing.
func NewLocalStore(root, prefix string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(prefix)), 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create upload directory: %w", err)
	}
	return &LocalStore{root: root, prefix: prefix}, nil
}

// Save implements [Store].
func (store *LocalStore) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	relative := objectName(store.prefix, filename)

	target, err := store.resolve(relative)
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", relative, err)
	}

	if _, err := io.Copy(file, body); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("storage: write %s: %w", relative, err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("storage: close %s: %w", relative, err)
	}

	return relative, nil
}

// Delete implements [Store].
func (store *LocalStore) Delete(ctx context.Context, path string) error {
	target, err := store.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", path, err)
	}
	return nil
}

// resolve maps a stored relative path to a filesystem path inside root.
func (store *LocalStore) resolve(path string) (string, error) {
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("storage: path %q escapes the public root", path)
	}
	return filepath.Join(store.root, local), nil
}
