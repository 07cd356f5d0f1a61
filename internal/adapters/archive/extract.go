package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/renato0307/covrun/internal/domain"
)

// Format is an archive container format
type Format string

const (
	FormatTar Format = "tar"
	FormatZip Format = "zip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// DetectFormat maps a file name to its archive format by extension.
// Compressed tarballs (.tar.gz, .tgz) are reported as FormatTar.
func DetectFormat(name string) (Format, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, true
	case strings.HasSuffix(lower, ".tar"),
		strings.HasSuffix(lower, ".tar.gz"),
		strings.HasSuffix(lower, ".tgz"):
		return FormatTar, true
	}
	return "", false
}

// ExtractMember returns the content of the first member, in stored order,
// whose base file name equals target.
func ExtractMember(data []byte, target string, format Format) ([]byte, error) {
	switch format {
	case FormatTar:
		return extractFromTar(data, target)
	case FormatZip:
		return extractFromZip(data, target)
	default:
		return nil, fmt.Errorf("unsupported archive format %q", format)
	}
}

func notFound(target string, format Format) error {
	return &domain.HarnessError{
		Err:  fmt.Errorf("no %s member named %s", format, target),
		Key:  target,
		Kind: domain.ErrMemberNotFound,
		Op:   "extract",
	}
}

// baseName strips directory components from a member name. Backslashes
// count as separators on every platform, so a member stored as a\b.json
// by a Windows tool matches b.json.
func baseName(name string) string {
	return path.Base(strings.ReplaceAll(name, "\\", "/"))
}

func extractFromTar(data []byte, target string) ([]byte, error) {
	var r io.Reader = bytes.NewReader(data)
	if bytes.HasPrefix(data, gzipMagic) {
		gz, err := gzip.NewReader(bufio.NewReader(r))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, notFound(target, FormatTar)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if hdr.Typeflag == tar.TypeDir || baseName(hdr.Name) != target {
			continue
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read tar member %s: %w", hdr.Name, err)
		}
		return content, nil
	}
}

func extractFromZip(data []byte, target string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	// zr.File is in central directory order, which is the stored order
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || baseName(f.Name) != target {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open zip member %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read zip member %s: %w", f.Name, err)
		}
		return content, nil
	}
	return nil, notFound(target, FormatZip)
}
