package minio

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/spatialgo/blobstore"
)

func TestDialInvalidEndpoint(t *testing.T) {
	_, err := Dial(Config{Endpoint: ""})
	assert.Error(t, err)
}

func TestStoreKey(t *testing.T) {
	s := &Store{prefix: "root/"}
	assert.Equal(t, "root/a/b.json", s.key("a/b.json"))

	s = &Store{}
	assert.Equal(t, "x", s.key("x"))
}

// TestStoreIntegration requires a running MinIO instance at MINIO_ENDPOINT.
func TestStoreIntegration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}

	bucket := "test-spatialgo"
	store, err := Dial(Config{
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    bucket,
		Prefix:    fmt.Sprintf("run-%d/", time.Now().UnixNano()),
	})
	require.NoError(t, err)

	ctx := context.Background()
	exists, err := store.client.BucketExists(ctx, bucket)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("hello minio")
	require.NoError(t, store.Put(ctx, "a.txt", data))

	got, err := blobstore.ReadAll(ctx, store, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names)

	require.NoError(t, store.Delete(ctx, "a.txt"))
	_, err = store.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
