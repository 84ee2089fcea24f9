package csvprobe

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nao1215/csvprobe/domain/model"
)

// writeXLSXFixture builds a small single-sheet workbook.
func writeXLSXFixture(t *testing.T) string {
	t.Helper()

	file := excelize.NewFile()
	defer func() {
		require.NoError(t, file.Close())
	}()

	sheet := file.GetSheetName(0)
	require.NoError(t, file.SetSheetRow(sheet, "A1", &[]any{"id", "name"}))
	require.NoError(t, file.SetSheetRow(sheet, "A2", &[]any{1, "alice"}))
	require.NoError(t, file.SetSheetRow(sheet, "A3", &[]any{2, "bob"}))

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, file.SaveAs(path))
	return path
}

func TestXLSXRowSource(t *testing.T) {
	t.Parallel()

	t.Run("Streams header and data rows", func(t *testing.T) {
		t.Parallel()

		path := writeXLSXFixture(t)
		source, err := OpenRowSource(path, nil)
		require.NoError(t, err)
		defer source.Close()

		rows := drainRowSource(t, source)
		require.Len(t, rows, 3)
		assert.Equal(t, model.Record{"id", "name"}, rows[0])
		assert.Equal(t, model.Record{"1", "alice"}, rows[1])
		assert.Equal(t, model.Record{"2", "bob"}, rows[2])
	})

	t.Run("Missing file", func(t *testing.T) {
		t.Parallel()

		_, err := newXLSXRowSource(filepath.Join(t.TempDir(), "nope.xlsx"))
		assert.Error(t, err)
	})

	t.Run("Corrupt file", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, "bad.xlsx", "not a zip archive")
		_, err := newXLSXRowSource(path)
		assert.Error(t, err)
	})
}
