package csvprobe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/csvprobe/domain/model"
)

// ExportChunks drains the iterator and writes every chunk to a single
// delimited file at path. The output is always UTF-8; the dialect
// controls the delimiter and line terminator. Compression is chosen
// from the path extension, so "out.csv.gz" gets gzip and "out.csv"
// stays plain. Writing bzip2 is not supported.
//
// The header row is written first so the output round-trips through
// Profile and OpenRowSource.
func ExportChunks(path string, header model.Header, dialect model.Dialect, it *ChunkIterator) error {
	if it == nil {
		return errors.New("csvprobe: export requires a chunk iterator")
	}

	writer, cleanup, err := createDatasetWriter(path)
	if err != nil {
		return fmt.Errorf("csvprobe: failed to create export file %s: %w", path, err)
	}

	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = dialect.Delimiter()
	csvWriter.UseCRLF = dialect.LineTerminator() == model.LineTerminatorCRLF

	writeErr := writeAllChunks(csvWriter, header, it)
	csvWriter.Flush()
	if writeErr == nil {
		writeErr = csvWriter.Error()
	}

	if cleanupErr := cleanup(); cleanupErr != nil && writeErr == nil {
		writeErr = fmt.Errorf("csvprobe: failed to finalize export file %s: %w", path, cleanupErr)
	}
	return writeErr
}

func writeAllChunks(w *csv.Writer, header model.Header, it *ChunkIterator) error {
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("csvprobe: failed to write header: %w", err)
		}
	}

	for {
		chunk, err := it.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, record := range chunk.Records() {
			if err := w.Write(record); err != nil {
				return fmt.Errorf("csvprobe: failed to write record in chunk %d: %w", chunk.Index(), err)
			}
		}
	}
}
