package harness

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// ValidPayload is a report payload carrying every required key
const ValidPayload = `{"name":"gsa","size":1024,"packages":{},"sections":[]}`

// Member is one archive entry
type Member struct {
	Body string
	Name string
}

// ReportHTML wraps payload the way the subject's HTML report embeds it
func ReportHTML(payload string) string {
	return `<!doctype html><html><head><title>gsa</title>` +
		`<script type="application/json">` + payload + `</script>` +
		`</head><body><div id="app"></div></body></html>`
}

// TarGz builds a gzip compressed tar archive holding members in order
func TarGz(tb testing.TB, members ...Member) []byte {
	tb.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, m := range members {
		hdr := &tar.Header{Mode: 0644, Name: m.Name, Size: int64(len(m.Body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			tb.Fatalf("Failed to write tar header: %v", err)
		}
		if _, err := tw.Write([]byte(m.Body)); err != nil {
			tb.Fatalf("Failed to write tar member: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		tb.Fatalf("Failed to close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		tb.Fatalf("Failed to close gzip: %v", err)
	}
	return buf.Bytes()
}

// Zip builds a zip archive holding members in order
func Zip(tb testing.TB, members ...Member) []byte {
	tb.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.Create(m.Name)
		if err != nil {
			tb.Fatalf("Failed to create zip member: %v", err)
		}
		if _, err := w.Write([]byte(m.Body)); err != nil {
			tb.Fatalf("Failed to write zip member: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}
