package csvprobe

import "math"

// estimateRowsPerChunk converts the measured average row size into a
// recommended number of rows per outbound chunk.
//
// A sample whose canonical re-encoded size is below smallSampleRatio
// of the estimation ceiling marks a dataset too small to warrant
// analysis; the estimator short-circuits to DefaultSmallDatasetRows.
// Otherwise the recommendation is ceil(targetBytes / avgRowSize) + 1
// where avgRowSize = encodedSize / rowCount. The guard on rowCount
// keeps a mis-sniffed dialect from surfacing as a divide-by-zero.
func estimateRowsPerChunk(encodedSize, rowCount, targetBytes int) (ChunkSize, error) {
	if targetBytes <= 0 {
		targetBytes = DefaultTargetChunkBytes
	}

	if float64(encodedSize) < smallSampleRatio*float64(DefaultEstimateSampleSize) {
		return ChunkSize(DefaultSmallDatasetRows), nil
	}

	if rowCount == 0 {
		return 0, ErrNoRowsInSample
	}

	avgRowSize := float64(encodedSize) / float64(rowCount)
	rows := int(math.Ceil(float64(targetBytes)/avgRowSize)) + 1
	return NewChunkSize(rows), nil
}
