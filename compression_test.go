package csvprobe

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCompression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want CompressionType
	}{
		{name: "No compression", path: "data.csv", want: CompressionNone},
		{name: "Gzip", path: "data.csv.gz", want: CompressionGZ},
		{name: "Bzip2", path: "data.csv.bz2", want: CompressionBZ2},
		{name: "Xz", path: "data.csv.xz", want: CompressionXZ},
		{name: "Zstd", path: "data.csv.zst", want: CompressionZSTD},
		{name: "Upper case", path: "DATA.CSV.GZ", want: CompressionGZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, detectCompression(tt.path))
		})
	}
}

func TestStripCompressionExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "data.csv", stripCompressionExt("data.csv.gz"))
	assert.Equal(t, "data.tsv", stripCompressionExt("data.tsv.zst"))
	assert.Equal(t, "data.csv", stripCompressionExt("data.csv"))
}

func TestCompressionRoundtrip(t *testing.T) {
	t.Parallel()

	// bzip2 is read-only; write support does not exist in the stack.
	compressions := []CompressionType{CompressionNone, CompressionGZ, CompressionXZ, CompressionZSTD}

	for _, compression := range compressions {
		t.Run(compression.String(), func(t *testing.T) {
			t.Parallel()

			payload := []byte("id,name\n1,alice\n2,bob\n")

			var buf bytes.Buffer
			writer, closeWriter, err := compressWriter(&buf, compression)
			require.NoError(t, err)
			_, err = writer.Write(payload)
			require.NoError(t, err)
			require.NoError(t, closeWriter())

			reader, closeReader, err := decompressReader(&buf, compression)
			require.NoError(t, err)
			decoded, err := io.ReadAll(reader)
			require.NoError(t, err)
			require.NoError(t, closeReader())

			assert.Equal(t, payload, decoded)
		})
	}
}

func TestCompressionRoundtripThroughFiles(t *testing.T) {
	t.Parallel()

	payload := "id,name\n1,alice\n2,bob\n"

	for _, ext := range []string{".csv", ".csv.gz", ".csv.xz", ".csv.zst"} {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "data"+ext)
			writer, closeWriter, err := createDatasetWriter(path)
			require.NoError(t, err)
			_, err = io.WriteString(writer, payload)
			require.NoError(t, err)
			require.NoError(t, closeWriter())

			reader, closeReader, err := openDatasetReader(path)
			require.NoError(t, err)
			decoded, err := io.ReadAll(reader)
			require.NoError(t, err)
			require.NoError(t, closeReader())

			assert.Equal(t, payload, string(decoded))
		})
	}
}

func TestBzip2WriteUnsupported(t *testing.T) {
	t.Parallel()

	_, _, err := compressWriter(&bytes.Buffer{}, CompressionBZ2)
	assert.Error(t, err)
}
