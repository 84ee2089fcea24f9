package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRunRecord(t *testing.T) {
	t.Parallel()

	valid := RunRecord{
		DatasetPath:  "/data/users.csv",
		Encoding:     "utf-8",
		Delimiter:    ',',
		Quote:        '"',
		Terminator:   "\n",
		RowsPerChunk: 500,
	}

	t.Run("Valid record", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validateRunRecord(valid))
	})

	t.Run("Empty dataset path", func(t *testing.T) {
		t.Parallel()
		record := valid
		record.DatasetPath = "  "
		assert.ErrorIs(t, validateRunRecord(record), ErrInvalidRun)
	})

	t.Run("Zero delimiter", func(t *testing.T) {
		t.Parallel()
		record := valid
		record.Delimiter = 0
		assert.ErrorIs(t, validateRunRecord(record), ErrInvalidRun)
	})

	t.Run("Non-positive rows per chunk", func(t *testing.T) {
		t.Parallel()
		record := valid
		record.RowsPerChunk = 0
		assert.ErrorIs(t, validateRunRecord(record), ErrInvalidRun)
	})
}

func TestValidateChunk(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateChunk(0, 0))
	assert.NoError(t, validateChunk(5, 1500))
	assert.ErrorIs(t, validateChunk(-1, 10), ErrInvalidChunk)
	assert.ErrorIs(t, validateChunk(0, -1), ErrInvalidChunk)
}
