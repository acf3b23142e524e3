package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestReadImage(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		max      int64
		wantType string
		wantErr  error
	}{
		{name: "png", data: pngHeader, max: 1024, wantType: "image/png"},
		{name: "gif", data: []byte("GIF89a......"), max: 1024, wantType: "image/gif"},
		{name: "exactly at the cap", data: pngHeader, max: int64(len(pngHeader)), wantType: "image/png"},
		{name: "one byte over", data: pngHeader, max: int64(len(pngHeader)) - 1, wantErr: common.ErrUploadTooLarge},
		{name: "text", data: []byte("hello world"), max: 1024, wantErr: common.ErrUnsupportedImage},
		{name: "empty", data: nil, max: 1024, wantErr: common.ErrUnsupportedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ReadImage(bytes.NewReader(tt.data), tt.max)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, img.ContentType)
			assert.Equal(t, tt.data, img.Data)
		})
	}
}

func TestNewName(t *testing.T) {
	n := newName("image/png")
	assert.True(t, strings.HasSuffix(n, ".png"), n)
	assert.True(t, validName(n))

	assert.True(t, strings.HasSuffix(newName("image/jpeg"), ".jpg"))
	assert.True(t, strings.HasSuffix(newName("image/gif"), ".gif"))
	assert.NotEqual(t, newName("image/png"), newName("image/png"))
}

func TestDiskStore_NameFollowsSniffedType(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	img, err := ReadImage(strings.NewReader("GIF89a<script>alert(1)</script>"), 1024)
	require.NoError(t, err)
	require.Equal(t, "image/gif", img.ContentType)

	name, err := s.Save(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, ".gif", filepath.Ext(name))
}

func TestDiskStore_Remove(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	name, err := s.Save(context.Background(), &Image{Data: pngHeader, ContentType: "image/png"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), name))
	_, err = s.Resolve(context.Background(), name)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.NoError(t, s.Remove(context.Background(), name), "removing twice is fine")
	assert.NoError(t, s.Remove(context.Background(), "../outside.png"))
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "../x.png", "a/b.png", `a\b.png`} {
		assert.False(t, validName(name), name)
	}
	assert.True(t, validName("0b1e.png"))
}

func TestDiskStore_SaveAndResolve(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewDiskStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	name, err := s.Save(context.Background(), &Image{Data: pngHeader, ContentType: "image/png"})
	require.NoError(t, err)

	loc, err := s.Resolve(context.Background(), name)
	require.NoError(t, err)
	assert.Empty(t, loc.RedirectURL)
	got, err := os.ReadFile(loc.FilePath)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, got)
}

func TestDiskStore_ResolveRejects(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "sub"), 0o700))

	for _, name := range []string{"missing.png", "../secret.txt", "sub"} {
		_, err := s.Resolve(context.Background(), name)
		assert.ErrorIs(t, err, common.ErrorNotFound, name)
	}
}
