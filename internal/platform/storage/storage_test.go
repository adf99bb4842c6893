// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/platform/storage"
)

/*
TestLocalStore_SaveDelete writes below the public root and tolerates repeated deletes.
*/
func TestLocalStore_SaveDelete(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewLocalStore(root, "uploads/images")
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "Cover.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "uploads/images/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	require.NoError(t, store.Delete(context.Background(), path))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))

	// Absent files count as deleted.
	assert.NoError(t, store.Delete(context.Background(), path))
}

/*
TestLocalStore_RejectsEscapingPaths refuses paths outside the root.
*/
func TestLocalStore_RejectsEscapingPaths(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "uploads/images")
	require.NoError(t, err)

	assert.Error(t, store.Delete(context.Background(), "../../etc/passwd"))
}

type fakeObjects struct {
	objects   map[string]string
	deleteErr error
}

func (f *fakeObjects) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	delete(f.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

/*
TestS3Store maps missing objects to success and surfaces other failures.
*/
func TestS3Store(t *testing.T) {
	objects := &fakeObjects{objects: map[string]string{}}
	store := storage.NewS3StoreWithClient(objects, "covers", "uploads/images")

	key, err := store.Save(context.Background(), "kieu.jpg", "image/jpeg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", objects.objects[key])

	require.NoError(t, store.Delete(context.Background(), key))
	assert.Empty(t, objects.objects)

	objects.deleteErr = &smithy.GenericAPIError{Code: "NoSuchKey", Message: "gone"}
	assert.NoError(t, store.Delete(context.Background(), key))

	objects.deleteErr = errors.New("access denied")
	assert.Error(t, store.Delete(context.Background(), key))
}
