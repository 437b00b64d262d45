package files_manager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestMIMEForPath(t *testing.T) {
	assert.Equal(t, "image/png", MIMEForPath("/tmp/a.PNG"))
	assert.Equal(t, "image/jpeg", MIMEForPath("photo.jpeg"))
	assert.Equal(t, "image/tiff", MIMEForPath("scan.tif"))
	assert.Equal(t, "", MIMEForPath("notes.txt"))
}

func TestCollectByType(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")
	touch(t, dir, "b.PNG")
	touch(t, dir, "c.jpg")
	touch(t, dir, ".hidden.png")
	touch(t, dir, "._resource.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	files, size, err := CollectByType(dir, "image/png")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, int64(2), size)
	for _, f := range files {
		assert.Contains(t, []string{"a.png", "b.PNG"}, filepath.Base(f))
	}
}

func TestCollectImagesSkipsPDFs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")
	touch(t, dir, "b.jpg")
	touch(t, dir, "doc.pdf")
	touch(t, dir, "readme.md")

	files, _, err := CollectImages(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestCheckProvidedDirs(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	assert.NoError(t, CheckProvidedDirs(in, out))
	assert.Error(t, CheckProvidedDirs("", out))
	assert.Error(t, CheckProvidedDirs(in, ""))
	assert.Error(t, CheckProvidedDirs(in, in))
	assert.Error(t, CheckProvidedDirs(filepath.Join(in, "missing"), out))
}
