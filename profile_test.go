package csvprobe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetProfileAccessors(t *testing.T) {
	t.Parallel()

	path := writeGzipTestFile(t, "users.csv.gz", "id,name\n1,alice\n2,bob\n3,carol\n")
	profile, err := Profile(path)
	require.NoError(t, err)

	assert.Equal(t, path, profile.Path())
	assert.Equal(t, FileTypeCSVGZ, profile.FileType())
	assert.Equal(t, CompressionGZ, profile.Compression())
	assert.True(t, profile.IsCompressed())
	assert.Equal(t, "users", profile.Name())
	assert.Equal(t, ',', profile.Dialect().Delimiter())
	assert.Equal(t, Header{"id", "name"}, profile.Header())
	assert.Equal(t, 3, profile.SampleRowCount())
	assert.Positive(t, profile.SampleByteSize())
	assert.True(t, profile.RowsPerChunk().IsValid())
	require.Len(t, profile.Columns(), 2)
	assert.Equal(t, "id", profile.Columns()[0].Name)
}

func TestDatasetProfileString(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "orders.csv", "id,total\n1,9.50\n2,3.25\n")
	profile, err := Profile(path)
	require.NoError(t, err)

	summary := profile.String()
	assert.Contains(t, summary, "orders")
	assert.Contains(t, summary, "rows/chunk=")
	assert.Contains(t, summary, "encoding=")
}
