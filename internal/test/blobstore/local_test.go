package blobstore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casework-backend/internal/blobstore"
)

func TestLocal_PutWritesFile(t *testing.T) {
	dir := t.TempDir()
	local, err := blobstore.NewLocal(dir)
	require.NoError(t, err)

	path, err := local.Put(context.Background(), "cover.png", []byte("image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/uploads/"), "path %q must be served under /uploads", path)
	assert.True(t, strings.HasSuffix(path, ".png"), "path %q must keep the extension", path)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}

func TestLocal_PutSameFilenameDistinctPaths(t *testing.T) {
	dir := t.TempDir()
	local, err := blobstore.NewLocal(dir)
	require.NoError(t, err)

	first, err := local.Put(context.Background(), "report.pdf", []byte("one"))
	require.NoError(t, err)
	second, err := local.Put(context.Background(), "report.pdf", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocal_ClientFilenameNotUsedAsPath(t *testing.T) {
	dir := t.TempDir()
	local, err := blobstore.NewLocal(dir)
	require.NoError(t, err)

	path, err := local.Put(context.Background(), "../../etc/passwd", []byte("nope"))
	require.NoError(t, err)

	name := strings.TrimPrefix(path, "/uploads/")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")

	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestNewLocal_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := blobstore.NewLocal(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
