package storage_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axflo_backend/internals/helpers/storage"
	"axflo_backend/internals/testutil"
)

func TestSaveAndDelete(t *testing.T) {
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	rel, err := blob.Save(ctx, storage.DirResumes, testutil.FileHeader(t, "My CV (final).pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "resumes/"))
	assert.True(t, strings.HasSuffix(rel, "-My_CV_final_.pdf"))

	data, err := os.ReadFile(filepath.Join(blob.Root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, "/media/"+rel, blob.PublicURL(rel))

	require.NoError(t, blob.Delete(ctx, rel))
	_, err = os.Stat(filepath.Join(blob.Root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, blob.Delete(ctx, rel))
}

func TestPathsStayInsideRoot(t *testing.T) {
	blob := testutil.NewBlob(t)
	outside := filepath.Join(filepath.Dir(blob.Root), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	require.NoError(t, blob.Delete(context.Background(), "../keep.txt"))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestURLOrNil(t *testing.T) {
	blob := testutil.NewBlob(t)
	assert.Nil(t, storage.URLOrNil(blob, " "))
	assert.Equal(t, "/media/news/a.webp", storage.URLOrNil(blob, "news/a.webp"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", blob.PublicURL("https://cdn.example.com/a.jpg"))

	storage.DeleteQuietly(context.Background(), blob, "")
	storage.DeleteQuietly(context.Background(), nil, "news/a.webp")
}

func TestSaveImageConvertsToWebP(t *testing.T) {
	blob := testutil.NewBlob(t)
	blob.WebP = storage.WebPOptions{MaxW: 8, MaxH: 8, Quality: 80}

	rel, err := blob.SaveImage(context.Background(), storage.DirAchievements, testutil.FileHeader(t, "award.png", testutil.PNG(t, 32, 16)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, "award.webp"))

	data, err := os.ReadFile(filepath.Join(blob.Root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 4, cfg.Height)

	_, err = blob.SaveImage(context.Background(), storage.DirAchievements, testutil.FileHeader(t, "notes.txt", []byte("plain text")))
	assert.Error(t, err)
}

func TestSweepTmp(t *testing.T) {
	root := t.TempDir()
	tmp := filepath.Join(root, "tmp")
	require.NoError(t, os.MkdirAll(tmp, 0o755))
	old := filepath.Join(tmp, "upload-old")
	fresh := filepath.Join(tmp, "upload-new")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))
	now := time.Now()
	require.NoError(t, os.Chtimes(old, now.Add(-3*time.Hour), now.Add(-3*time.Hour)))

	n, err := storage.SweepTmp(root, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = os.Stat(fresh)
	assert.NoError(t, err)

	n, err = storage.SweepTmp(t.TempDir(), time.Hour, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}
