package archive

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covrun/internal/domain"
)

type member struct {
	name    string
	content string
}

func makeTar(t *testing.T, members ...member) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, m := range members {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Mode:     0644,
			Name:     m.name,
			Size:     int64(len(m.content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(m.content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func makeTarGz(t *testing.T, members ...member) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(makeTar(t, members...))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func makeZip(t *testing.T, members ...member) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.Create(m.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(m.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractMember(t *testing.T) {
	members := []member{
		{name: "README.md", content: "readme"},
		{name: "gsa/svg/a/b/c/result.json", content: `{"name":"bin"}`},
		{name: "gsa/svg/result.svg", content: "<svg/>"},
	}

	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		{name: "tar", data: makeTar(t, members...), format: FormatTar},
		{name: "tar.gz", data: makeTarGz(t, members...), format: FormatTar},
		{name: "zip", data: makeZip(t, members...), format: FormatZip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractMember(tt.data, "result.json", tt.format)
			require.NoError(t, err)
			assert.Equal(t, `{"name":"bin"}`, string(got))

			got, err = ExtractMember(tt.data, "README.md", tt.format)
			require.NoError(t, err)
			assert.Equal(t, "readme", string(got))

			_, err = ExtractMember(tt.data, "missing.json", tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMemberNotFound)

			var he *domain.HarnessError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, "missing.json", he.Key)
		})
	}
}

func TestExtractMember_FirstMatchInStoredOrder(t *testing.T) {
	members := []member{
		{name: "z/data.json", content: "first"},
		{name: "a/data.json", content: "second"},
	}

	for format, data := range map[Format][]byte{
		FormatTar: makeTar(t, members...),
		FormatZip: makeZip(t, members...),
	} {
		got, err := ExtractMember(data, "data.json", format)
		require.NoError(t, err, format)
		assert.Equal(t, "first", string(got), format)
	}
}

func TestExtractMember_MatchesWholeBaseName(t *testing.T) {
	data := makeZip(t, member{name: "dir/my-result.json", content: "x"})

	_, err := ExtractMember(data, "result.json", FormatZip)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestExtractMember_BackslashSeparatesDirectories(t *testing.T) {
	data := makeZip(t, member{name: `gsa\svg\result.json`, content: "windows"})

	got, err := ExtractMember(data, "result.json", FormatZip)
	require.NoError(t, err)
	assert.Equal(t, "windows", string(got))

	_, err = ExtractMember(data, `gsa\svg\result.json`, FormatZip)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestExtractMember_Corrupt(t *testing.T) {
	_, err := ExtractMember([]byte("not an archive"), "x", FormatZip)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMemberNotFound)

	_, err = ExtractMember([]byte("x"), "x", Format("rar"))
	require.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		want   Format
		wantOK bool
	}{
		{name: "out.zip", want: FormatZip, wantOK: true},
		{name: "out.TAR", want: FormatTar, wantOK: true},
		{name: "out.tar.gz", want: FormatTar, wantOK: true},
		{name: "out.tgz", want: FormatTar, wantOK: true},
		{name: "out.html", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectFormat(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
