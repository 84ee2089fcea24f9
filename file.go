package csvprobe

import (
	"path/filepath"
	"strings"
)

// FileType represents supported dataset types including compression variants
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeCSVGZ represents gzip-compressed CSV file type
	FileTypeCSVGZ
	// FileTypeTSVGZ represents gzip-compressed TSV file type
	FileTypeTSVGZ
	// FileTypeCSVBZ2 represents bzip2-compressed CSV file type
	FileTypeCSVBZ2
	// FileTypeTSVBZ2 represents bzip2-compressed TSV file type
	FileTypeTSVBZ2
	// FileTypeCSVXZ represents xz-compressed CSV file type
	FileTypeCSVXZ
	// FileTypeTSVXZ represents xz-compressed TSV file type
	FileTypeTSVXZ
	// FileTypeCSVZSTD represents zstd-compressed CSV file type
	FileTypeCSVZSTD
	// FileTypeTSVZSTD represents zstd-compressed TSV file type
	FileTypeTSVZSTD
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// extCSV is the CSV file extension
	extCSV = ".csv"
	// extTSV is the TSV file extension
	extTSV = ".tsv"
	// extParquet is the Parquet file extension
	extParquet = ".parquet"
	// extXLSX is the Excel XLSX file extension
	extXLSX = ".xlsx"
	// extGZ is the gzip compression extension
	extGZ = ".gz"
	// extBZ2 is the bzip2 compression extension
	extBZ2 = ".bz2"
	// extXZ is the xz compression extension
	extXZ = ".xz"
	// extZSTD is the zstd compression extension
	extZSTD = ".zst"
)

// file represents a dataset on disk, with its type derived from the
// file-name suffix. Parquet and XLSX files are never compressed
// externally; their formats carry compression internally.
type file struct {
	path     string
	fileType FileType
}

// newFile creates a new file
func newFile(path string) *file {
	return &file{
		path:     path,
		fileType: detectFileType(path),
	}
}

// isSupportedFile checks if the file has a supported extension
func isSupportedFile(fileName string) bool {
	return detectFileType(fileName) != FileTypeUnsupported
}

// baseFileType maps the format suffix, ignoring any compression
// suffix, to its base FileType.
func baseFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(stripCompressionExt(path))) {
	case extCSV:
		return FileTypeCSV
	case extTSV:
		return FileTypeTSV
	case extParquet:
		return FileTypeParquet
	case extXLSX:
		return FileTypeXLSX
	default:
		return FileTypeUnsupported
	}
}

// detectFileType detects file type from extension, considering compressed files
func detectFileType(path string) FileType {
	compression := detectCompression(path)

	switch baseFileType(path) {
	case FileTypeCSV:
		switch compression {
		case CompressionGZ:
			return FileTypeCSVGZ
		case CompressionBZ2:
			return FileTypeCSVBZ2
		case CompressionXZ:
			return FileTypeCSVXZ
		case CompressionZSTD:
			return FileTypeCSVZSTD
		default:
			return FileTypeCSV
		}
	case FileTypeTSV:
		switch compression {
		case CompressionGZ:
			return FileTypeTSVGZ
		case CompressionBZ2:
			return FileTypeTSVBZ2
		case CompressionXZ:
			return FileTypeTSVXZ
		case CompressionZSTD:
			return FileTypeTSVZSTD
		default:
			return FileTypeTSV
		}
	case FileTypeParquet:
		if compression != CompressionNone {
			return FileTypeUnsupported
		}
		return FileTypeParquet
	case FileTypeXLSX:
		if compression != CompressionNone {
			return FileTypeUnsupported
		}
		return FileTypeXLSX
	default:
		return FileTypeUnsupported
	}
}

// extension returns the file extension for the FileType
func (ft FileType) extension() string {
	switch ft {
	case FileTypeCSV:
		return extCSV
	case FileTypeTSV:
		return extTSV
	case FileTypeParquet:
		return extParquet
	case FileTypeXLSX:
		return extXLSX
	case FileTypeCSVGZ:
		return extCSV + extGZ
	case FileTypeTSVGZ:
		return extTSV + extGZ
	case FileTypeCSVBZ2:
		return extCSV + extBZ2
	case FileTypeTSVBZ2:
		return extTSV + extBZ2
	case FileTypeCSVXZ:
		return extCSV + extXZ
	case FileTypeTSVXZ:
		return extTSV + extXZ
	case FileTypeCSVZSTD:
		return extCSV + extZSTD
	case FileTypeTSVZSTD:
		return extTSV + extZSTD
	default:
		return ""
	}
}

// baseType returns the base file type without compression
func (ft FileType) baseType() FileType {
	switch ft {
	case FileTypeCSV, FileTypeCSVGZ, FileTypeCSVBZ2, FileTypeCSVXZ, FileTypeCSVZSTD:
		return FileTypeCSV
	case FileTypeTSV, FileTypeTSVGZ, FileTypeTSVBZ2, FileTypeTSVXZ, FileTypeTSVZSTD:
		return FileTypeTSV
	case FileTypeParquet:
		return FileTypeParquet
	case FileTypeXLSX:
		return FileTypeXLSX
	default:
		return FileTypeUnsupported
	}
}

// isDelimitedText reports whether the base type is delimited text,
// the only family the profiling pipeline applies to.
func (ft FileType) isDelimitedText() bool {
	base := ft.baseType()
	return base == FileTypeCSV || base == FileTypeTSV
}

// getFileType returns file type
func (f *file) getFileType() FileType {
	return f.fileType
}

// compressionType returns the compression applied to the file
func (f *file) compressionType() CompressionType {
	return detectCompression(f.path)
}

// datasetNameFromPath derives a display name for a dataset from its path,
// stripping compression and format extensions.
func datasetNameFromPath(path string) string {
	fileName := filepath.Base(path)
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(strings.ToLower(fileName), ext) {
			fileName = fileName[:len(fileName)-len(ext)]
			break
		}
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
