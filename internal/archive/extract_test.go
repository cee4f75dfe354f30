package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTar writes the given entries as a tar stream, optionally gzipped, to
// the file at path.
func writeTar(t *testing.T, path string, gzipped bool, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if gzipped {
		gz = gzip.NewWriter(f)
		w = gz
	}

	tw := tar.NewWriter(w)
	for name, content := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	if gz != nil {
		require.NoError(t, gz.Close())
	}
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "lazygit_0.40.2_Linux_x86_64.tar.gz", want: true},
		{name: "tool.tgz", want: true},
		{name: "tool.tar.bz2", want: true},
		{name: "tool.tar.xz", want: true},
		{name: "tool.tar", want: true},
		{name: "win32yank-x64.zip", want: true},
		{name: "tool.7z", want: true},
		{name: "TOOL.ZIP", want: true},
		{name: "tool.deb", want: false},
		{name: "tool.rpm", want: false},
		{name: "tool.gz", want: false},
		{name: "checksums.txt", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.name))
		})
	}
}

func TestExtractFileFromTarGz(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lazygit_0.40.2_Linux_x86_64.tar.gz")
	writeTar(t, src, true, map[string]string{
		"LICENSE":                  "license text",
		"lazygit_0.40.2/lazygit":   "the binary",
		"lazygit_0.40.2/README.md": "readme",
	})

	destDir := filepath.Join(dir, "out")
	got, err := ExtractFile(src, "lazygit", destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "lazygit"), got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "the binary", string(content))

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100, "extracted member should be executable")
}

func TestExtractFileFromTgz(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tool.tgz")
	writeTar(t, src, true, map[string]string{"tool": "tgz binary"})

	got, err := ExtractFile(src, "tool", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "tgz binary", string(content))
}

func TestExtractFileFromPlainTar(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tool.tar")
	writeTar(t, src, false, map[string]string{"nested/dir/tool": "plain tar binary"})

	got, err := ExtractFile(src, "tool", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tool"), got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "plain tar binary", string(content))
}

func TestExtractFileFromZip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "win32yank-x64.zip")
	writeZip(t, src, map[string]string{
		"win32yank.exe": "pe32 bytes",
		"README.md":     "readme",
	})

	got, err := ExtractFile(src, "win32yank.exe", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "pe32 bytes", string(content))
}

func TestExtractFileMissingMember(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tool.tar.gz")
	writeTar(t, src, true, map[string]string{"other": "x"})

	_, err := ExtractFile(src, "tool", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file named tool")

	src = filepath.Join(dir, "tool.zip")
	writeZip(t, src, map[string]string{"other": "x"})

	_, err = ExtractFile(src, "tool", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file named tool")
}

func TestExtractFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tool.deb")
	require.NoError(t, os.WriteFile(src, []byte("not an archive"), 0644))

	_, err := ExtractFile(src, "tool", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported archive format")
}

func TestExtractFileCreatesDestDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tool.tar.gz")
	writeTar(t, src, true, map[string]string{"tool": "x"})

	destDir := filepath.Join(dir, "a", "b", "c")
	got, err := ExtractFile(src, "tool", destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "tool"), got)
}
