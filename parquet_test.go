package csvprobe

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/csvprobe/domain/model"
)

// writeParquetFixture builds a small two-column Parquet file.
func writeParquetFixture(t *testing.T) string {
	t.Helper()

	pool := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	builder.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	builder.Field(1).(*array.StringBuilder).AppendValues([]string{"alice", "bob", ""}, []bool{true, true, false})

	record := builder.NewRecord()
	defer record.Release()

	table := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer table.Release()

	path := filepath.Join(t.TempDir(), "data.parquet")
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	require.NoError(t, pqarrow.WriteTable(table, out,
		int64(parquetReadBatchRows), parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()))
	return path
}

func TestParquetRowSource(t *testing.T) {
	t.Parallel()

	t.Run("Header then data rows", func(t *testing.T) {
		t.Parallel()

		path := writeParquetFixture(t)
		source, err := OpenRowSource(path, nil)
		require.NoError(t, err)
		defer source.Close()

		rows := drainRowSource(t, source)
		require.Len(t, rows, 4)
		assert.Equal(t, model.Record{"id", "name"}, rows[0])
		assert.Equal(t, model.Record{"1", "alice"}, rows[1])
		assert.Equal(t, model.Record{"2", "bob"}, rows[2])
		assert.Equal(t, model.Record{"3", ""}, rows[3], "null cell should stringify to empty")
	})

	t.Run("Chunk iteration over parquet rows", func(t *testing.T) {
		t.Parallel()

		path := writeParquetFixture(t)
		source, err := OpenRowSource(path, nil)
		require.NoError(t, err)
		defer source.Close()

		it := NewChunkIterator(source, ChunkSize(2))

		first, err := it.Next()
		require.NoError(t, err)
		assert.Equal(t, 2, first.Len())

		second, err := it.Next()
		require.NoError(t, err)
		assert.Equal(t, 2, second.Len())

		_, err = it.Next()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("Missing file", func(t *testing.T) {
		t.Parallel()

		_, err := newParquetRowSource(filepath.Join(t.TempDir(), "nope.parquet"))
		assert.ErrorIs(t, err, ErrSampleRead)
	})

	t.Run("Empty file", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "empty.parquet", "")
		_, err := newParquetRowSource(path)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("Corrupt file", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "bad.parquet", "this is not parquet")
		_, err := newParquetRowSource(path)
		assert.Error(t, err)
	})
}
