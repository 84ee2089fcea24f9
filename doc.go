// Package csvprobe profiles delimited datasets before chunked upload to a
// scoring service. Given a CSV or TSV file, it answers four questions from
// a bounded sample: what encoding the bytes are in, what dialect the rows
// use, how many rows can be parsed safely, and how many rows each upload
// chunk should carry to hit a target payload size.
//
// # Features
//
//   - Detect text encoding statistically, with UTF-8 BOM handling
//   - Sniff delimiter, quoting, and line terminator from a sample
//   - Automatic handling of compressed files (gzip, bzip2, xz, zstandard)
//   - Recommend rows-per-chunk from measured average row size
//   - Stream rows in chunks from CSV, TSV, Parquet, and Excel (XLSX) files
//   - Journal runs and chunk progress in SQLite for resumable uploads
//
// # Basic Usage
//
// The simplest way to use csvprobe is the Profile function:
//
//	profile, err := csvprobe.Profile("data.csv.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("encoding=%s rows/chunk=%d\n",
//	    profile.Encoding().Name(), profile.RowsPerChunk())
//
// # Advanced Usage
//
// For delimiter hints, custom chunk targets, or several datasets at once,
// use the builder:
//
//	builder, err := csvprobe.NewBuilder().
//	    AddPath("users.csv").
//	    AddPath("orders.tsv.gz").
//	    SetDelimiterHint(';').
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer builder.Cleanup()
//
//	profiles, err := builder.Profile(ctx)
//
// After profiling, stream the dataset in recommended-size chunks:
//
//	source, err := csvprobe.OpenRowSource(profile.Path(), profile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	it := csvprobe.NewChunkIterator(source, profile.RowsPerChunk())
//	for {
//	    chunk, err := it.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    upload(chunk)
//	}
package csvprobe
