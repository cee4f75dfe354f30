package archive

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data
)

// supportedSuffixes are the archive formats ExtractFile can open. Release
// asset matching uses the same list, so the pipeline never downloads an
// archive it cannot extract.
var supportedSuffixes = []string{
	".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar", ".zip", ".7z",
}

// Supported reports whether the file name carries a supported archive suffix.
func Supported(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range supportedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// ExtractFile pulls the single entry whose base name equals member out of the
// archive at src and writes it to destDir/member with executable permissions.
// Every other archive entry is ignored. Routing is by archive suffix; an
// unsupported suffix or a missing member is an error.
func ExtractFile(src, member, destDir string) (string, error) {
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return extractZipMember(src, member, destDir)
	case strings.HasSuffix(lower, ".7z"):
		return extract7zMember(src, member, destDir)
	case strings.HasSuffix(lower, ".tar"), strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"),
		strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tar.xz"):
		return extractTarMember(src, member, destDir)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}
}

// extractTarMember handles tar and the compressed tar variants.
func extractTarMember(src, member, destDir string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = f
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(lower, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(lower, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return "", err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return "", err
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != member {
			continue
		}
		return writeMember(destDir, member, tr)
	}
	return "", fmt.Errorf("no file named %s in archive %s", member, src)
}

// extractZipMember extracts a single named entry from a .zip archive.
func extractZipMember(src, member, destDir string) (string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || filepath.Base(f.Name) != member {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		path, err := writeMember(destDir, member, rc)
		rc.Close()
		return path, err
	}
	return "", fmt.Errorf("no file named %s in archive %s", member, src)
}

// extract7zMember extracts a single named entry using the sevenzip library.
func extract7zMember(src, member, destDir string) (string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || filepath.Base(f.Name) != member {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		path, err := writeMember(destDir, member, rc)
		rc.Close()
		return path, err
	}
	return "", fmt.Errorf("no file named %s in archive %s", member, src)
}

// writeMember writes one archive entry to destDir/member, creating destDir as
// needed. Extracted members are tool binaries, so the file is made executable.
func writeMember(destDir, member string, r io.Reader) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}
	target := filepath.Join(destDir, member)
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return target, nil
}
