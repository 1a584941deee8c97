package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docshare/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalForTest(t *testing.T) (Storage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocal(config.StorageConfig{UploadDir: dir})
	require.NoError(t, err)
	return s, dir
}

func TestNewLocal_CreatesDirectory(t *testing.T) {
	_, dir := newLocalForTest(t)

	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestLocal_PutGetDelete(t *testing.T) {
	s, dir := newLocalForTest(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "relatorio_1700000000.pdf", strings.NewReader("%PDF-1.4 fake"), PutOptions{Size: 13})
	require.NoError(t, err)
	assert.Equal(t, "relatorio_1700000000.pdf", info.Key)
	assert.Equal(t, int64(13), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	rc, getInfo, err := s.Get(ctx, "relatorio_1700000000.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(body))
	assert.Equal(t, int64(13), getInfo.Size)

	require.NoError(t, s.Delete(ctx, "relatorio_1700000000.pdf"))

	_, _, err = s.Get(ctx, "relatorio_1700000000.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocal_PutOverwritesExistingKey(t *testing.T) {
	s, _ := newLocalForTest(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "doc_1700000000.pdf", strings.NewReader("first"), PutOptions{Size: 5})
	require.NoError(t, err)
	_, err = s.Put(ctx, "doc_1700000000.pdf", strings.NewReader("second"), PutOptions{Size: 6})
	require.NoError(t, err)

	rc, info, err := s.Get(ctx, "doc_1700000000.pdf")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "second", string(body))
	assert.Equal(t, int64(6), info.Size)
}

func TestLocal_RejectsTraversalKeys(t *testing.T) {
	s, _ := newLocalForTest(t)
	ctx := context.Background()

	for _, key := range []string{"", "../secret", "a/b.pdf", `a\b.pdf`, ".", "..", "foo/../bar"} {
		_, err := s.Put(ctx, key, strings.NewReader("x"), PutOptions{Size: 1})
		assert.Error(t, err, "key %q", key)

		_, _, err = s.Get(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound, "key %q", key)
	}
}

func TestLocal_AllowsInteriorDotsKey(t *testing.T) {
	s, _ := newLocalForTest(t)
	ctx := context.Background()

	// Sanitized originals keep dots, so stored keys like a..b_<ts>.pdf are valid.
	key := "a..b_1700000000.pdf"
	info, err := s.Put(ctx, key, strings.NewReader("%PDF-1.4 fake"), PutOptions{Size: 13})
	require.NoError(t, err)
	assert.Equal(t, key, info.Key)

	rc, getInfo, err := s.Get(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(body))
	assert.Equal(t, int64(13), getInfo.Size)

	require.NoError(t, s.Delete(ctx, key))
	_, _, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocal_PutSizeMismatch(t *testing.T) {
	s, dir := newLocalForTest(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "short.pdf", strings.NewReader("abc"), PutOptions{Size: 10})
	assert.Error(t, err)

	// The failed write must not become addressable.
	_, statErr := os.Stat(filepath.Join(dir, "short.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocal_DeleteMissingKeyIsNoop(t *testing.T) {
	s, _ := newLocalForTest(t)
	assert.NoError(t, s.Delete(context.Background(), "nope.pdf"))
}
