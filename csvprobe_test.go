package csvprobe

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLargeCSV generates a CSV body bigger than the estimation sample
// so profiling exercises the size model instead of the small-dataset
// shortcut.
func buildLargeCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("id,name,email,score,joined\n")
	for i := range rows {
		fmt.Fprintf(&sb, "%d,user%06d,user%06d@example.com,%d.%02d,2024-03-%02d\n",
			i, i, i, i%100, i%100, i%28+1)
	}
	return sb.String()
}

func TestProfile(t *testing.T) {
	t.Parallel()

	t.Run("Small CSV gets the fixed small-dataset recommendation", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "small.csv", "id,name\n1,alice\n2,bob\n3,carol\n")
		profile, err := Profile(path)
		require.NoError(t, err)

		assert.Equal(t, ChunkSize(DefaultSmallDatasetRows), profile.RowsPerChunk())
		assert.Equal(t, ',', profile.Dialect().Delimiter())
		assert.Equal(t, Header{"id", "name"}, profile.Header())
		assert.Equal(t, CompressionNone, profile.Compression())
		assert.False(t, profile.IsCompressed())
		assert.Equal(t, "small", profile.Name())
	})

	t.Run("Large CSV gets a size-derived recommendation", func(t *testing.T) {
		t.Parallel()

		// Roughly 60 bytes per row; 15000 rows comfortably exceed the
		// 512KiB estimation sample.
		path := writeTestFile(t, "large.csv", buildLargeCSV(15000))
		profile, err := Profile(path)
		require.NoError(t, err)

		assert.NotEqual(t, ChunkSize(DefaultSmallDatasetRows), profile.RowsPerChunk())
		assert.Greater(t, profile.RowsPerChunk().Int(), 1000)
		assert.Greater(t, profile.SampleRowCount(), 1000)

		columns := profile.Columns()
		require.Len(t, columns, 5)
		assert.Equal(t, ColumnTypeInteger, columns[0].Type)
		assert.Equal(t, ColumnTypeText, columns[1].Type)
		assert.Equal(t, ColumnTypeReal, columns[3].Type)
		assert.Equal(t, ColumnTypeDatetime, columns[4].Type)
	})

	t.Run("Gzip dataset profiles identically to its plain twin", func(t *testing.T) {
		t.Parallel()

		content := buildLargeCSV(15000)
		plain := writeTestFile(t, "twin.csv", content)
		compressed := writeGzipTestFile(t, "twin.csv.gz", content)

		plainProfile, err := Profile(plain)
		require.NoError(t, err)
		gzProfile, err := Profile(compressed)
		require.NoError(t, err)

		assert.Equal(t, plainProfile.RowsPerChunk(), gzProfile.RowsPerChunk())
		assert.Equal(t, plainProfile.Dialect(), gzProfile.Dialect())
		assert.Equal(t, plainProfile.Header(), gzProfile.Header())
		assert.Equal(t, plainProfile.SampleRowCount(), gzProfile.SampleRowCount())
		assert.Equal(t, CompressionGZ, gzProfile.Compression())
		assert.True(t, gzProfile.IsCompressed())
	})

	t.Run("TSV profiles with a tab delimiter", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "data.tsv", "id\tname\n1\talice\n2\tbob\n")
		profile, err := Profile(path)
		require.NoError(t, err)
		assert.Equal(t, '\t', profile.Dialect().Delimiter())
	})

	t.Run("CRLF dataset keeps its terminator", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "crlf.csv", "id,name\r\n1,alice\r\n2,bob\r\n")
		profile, err := Profile(path)
		require.NoError(t, err)
		assert.Equal(t, "\r\n", profile.Dialect().LineTerminator())
	})

	t.Run("Unsupported format is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "data.json", `{"a":1}`)
		_, err := Profile(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("Parquet cannot be profiled", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "data.parquet", "not really parquet")
		_, err := Profile(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("Missing file fails", func(t *testing.T) {
		t.Parallel()

		_, err := Profile("no/such/file.csv")
		assert.Error(t, err)
	})

	t.Run("Empty file fails", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "empty.csv", "")
		_, err := Profile(path)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestProfileContext(t *testing.T) {
	t.Parallel()

	t.Run("Cancelled context aborts profiling", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "data.csv", "id,name\n1,alice\n2,bob\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ProfileContext(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Background context succeeds", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "data.csv", "id,name\n1,alice\n2,bob\n")
		profile, err := ProfileContext(context.Background(), path)
		require.NoError(t, err)
		assert.NotNil(t, profile)
	})
}

func TestSessionStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state sessionState
		want  string
	}{
		{stateInit, "INIT"},
		{stateSampled, "SAMPLED"},
		{stateEncodingDetected, "ENCODING_DETECTED"},
		{stateDialectSniffed, "DIALECT_SNIFFED"},
		{stateRowsScanned, "ROWS_SCANNED"},
		{stateEstimated, "ESTIMATED"},
		{sessionState(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

// buildQuotedMultilineCSV generates records whose quoted note field
// embeds a line terminator, so every record spans two physical lines.
func buildQuotedMultilineCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("id,note,pad\n")
	pad := strings.Repeat("x", 40)
	for i := range rows {
		fmt.Fprintf(&sb, "%08d,\"alpha\nbeta\",%s\n", i, pad)
	}
	return sb.String()
}

func TestProfileQuotedMultilineFields(t *testing.T) {
	t.Parallel()

	dialect := mustDialect(t, ',', '"', "\n")

	t.Run("Recommendation follows structured rows", func(t *testing.T) {
		t.Parallel()

		// 7000 records of ~63 bytes keep the sample inside the
		// estimation ceiling while exceeding the small-dataset cutoff.
		path := writeTestFile(t, "multiline.csv", buildQuotedMultilineCSV(7000))

		ctx := context.Background()
		builder, err := NewBuilder().AddPath(path).SetDialect(dialect).Build(ctx)
		require.NoError(t, err)
		defer func() {
			require.NoError(t, builder.Cleanup())
		}()

		profiles, err := builder.Profile(ctx)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		profile := profiles[0]

		// The average row size must come from parsed records, not from
		// terminator counts, which here run at two per record.
		avgRowSize := float64(profile.SampleByteSize()) / float64(profile.SampleRowCount())
		assert.InDelta(t, 63.0, avgRowSize, 1.0)

		expected, err := estimateRowsPerChunk(
			profile.SampleByteSize(), profile.SampleRowCount(), DefaultTargetChunkBytes)
		require.NoError(t, err)
		assert.Equal(t, expected, profile.RowsPerChunk())
		assert.Greater(t, profile.RowsPerChunk().Int(), 20000)
		assert.Less(t, profile.RowsPerChunk().Int(), 30000)
	})

	t.Run("Windowed estimation re-scans structured rows", func(t *testing.T) {
		t.Parallel()

		// 12000 records push the scanned sample past the estimation
		// ceiling, forcing the estimator onto its own window.
		path := writeTestFile(t, "multiline-large.csv", buildQuotedMultilineCSV(12000))

		ctx := context.Background()
		builder, err := NewBuilder().AddPath(path).SetDialect(dialect).Build(ctx)
		require.NoError(t, err)
		defer func() {
			require.NoError(t, builder.Cleanup())
		}()

		profiles, err := builder.Profile(ctx)
		require.NoError(t, err)
		require.Len(t, profiles, 1)

		got := profiles[0].RowsPerChunk().Int()
		assert.Greater(t, got, 20000)
		assert.Less(t, got, 30000)
	})
}
