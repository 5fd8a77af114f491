package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_URLs(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	uploadURL, expiresAt, err := stub.GenerateUploadURL(ctx, "attachments/a/b/c.pdf", "application/pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, uploadURL, "/upload/attachments/a/b/c.pdf")
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	downloadURL, _, err := stub.GenerateDownloadURL(ctx, "attachments/a/b/c.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, downloadURL, "/download/attachments/a/b/c.pdf")
}

func TestStubObjectStorage_EmptyKeyRejected(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	_, _, err := stub.GenerateUploadURL(ctx, "", "application/pdf", time.Minute)
	assert.Error(t, err)

	_, _, err = stub.GenerateDownloadURL(ctx, "", time.Minute)
	assert.Error(t, err)

	assert.Error(t, stub.DeleteObject(ctx, ""))
}

func TestStubObjectStorage_DeleteTracksKeys(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	require.NoError(t, stub.DeleteObject(ctx, "attachments/x"))
	require.NoError(t, stub.DeleteObject(ctx, "attachments/y"))

	assert.Equal(t, []string{"attachments/x", "attachments/y"}, stub.Deleted())

	exists, err := stub.ObjectExists(ctx, "attachments/x")
	require.NoError(t, err)
	assert.True(t, exists)
}
