package csvprobe

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ColumnProfile summarizes one column of the sampled rows: its header
// name, the inferred value type, and how many non-empty values were
// observed. It feeds operator display only; chunking never depends on
// column types.
type ColumnProfile struct {
	// Name is the column name from the header row.
	Name string
	// Type is the inferred value type.
	Type ColumnType
	// NonNull is the number of non-empty sampled values.
	NonNull int
}

// Type inference constants
const (
	// maxInferenceSampleSize limits how many values are sampled per column
	maxInferenceSampleSize = 1000
	// minTypeConfidence is the minimum fraction of values that must match a type
	minTypeConfidence = 0.8
	// earlyTextTermination is the fraction of text values that short-circuits to text
	earlyTextTermination = 0.5
	// minRealShare is the minimum fraction of real values needed to prefer REAL over INTEGER
	minRealShare = 0.1
	// minDatetimeLength is the minimum reasonable length for datetime values
	minDatetimeLength = 4
	// maxDatetimeLength is the maximum reasonable length for datetime values
	maxDatetimeLength = 35
)

// datetimePattern pairs a shape regexp with the layouts that shape can carry
type datetimePattern struct {
	pattern *regexp.Regexp
	formats []string
}

var datetimePatterns = []datetimePattern{
	// ISO8601 with timezone (most common first for early termination)
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	// ISO8601 without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.000"},
	},
	// ISO8601 date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.000"},
	},
	// ISO8601 date only
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
	// US formats
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}( (AM|PM))?$`),
		[]string{"1/2/2006 15:04:05", "1/2/2006 3:04:05 PM", "01/02/2006 15:04:05"},
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"1/2/2006", "01/02/2006"},
	},
	// European formats
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006", "02.01.2006"},
	},
}

// isDatetime checks if a string value represents a datetime
func isDatetime(value string) bool {
	valueLen := len(value)
	if valueLen < minDatetimeLength || valueLen > maxDatetimeLength {
		return false
	}

	// A datetime must contain at least one digit and one separator;
	// checking first avoids running regexps over plain words.
	hasDigit := false
	hasSeparator := false
	for _, r := range value {
		if r >= '0' && r <= '9' {
			hasDigit = true
		} else if r == '-' || r == '/' || r == '.' || r == ':' || r == 'T' || r == ' ' {
			hasSeparator = true
		}
		if hasDigit && hasSeparator {
			break
		}
	}
	if !hasDigit || !hasSeparator {
		return false
	}

	for _, dp := range datetimePatterns {
		if dp.pattern.MatchString(value) {
			for _, format := range dp.formats {
				if _, err := time.Parse(format, value); err == nil {
					return true
				}
			}
		}
	}
	return false
}

// isInteger checks if a value parses as an integer
func isInteger(value string) bool {
	if len(value) == 0 {
		return false
	}
	first := value[0]
	if first != '+' && first != '-' && (first < '0' || first > '9') {
		return false
	}
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// isReal checks if a value parses as a float
func isReal(value string) bool {
	hasDigit := false
	for _, r := range value {
		if r >= '0' && r <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return false
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// classifyValue determines the type of a single value
func classifyValue(value string) ColumnType {
	if isDatetime(value) {
		return ColumnTypeDatetime
	}
	if isInteger(value) {
		return ColumnTypeInteger
	}
	if isReal(value) {
		return ColumnTypeReal
	}
	return ColumnTypeText
}

// sampleValues caps the values considered for inference, stepping
// evenly across the column so wide samples stay cheap.
func sampleValues(values []string) []string {
	if len(values) <= maxInferenceSampleSize {
		return values
	}
	step := max(1, len(values)/maxInferenceSampleSize)
	samples := make([]string, 0, maxInferenceSampleSize)
	for i := 0; i < len(values) && len(samples) < maxInferenceSampleSize; i += step {
		samples = append(samples, values[i])
	}
	return samples
}

// inferColumnType infers the column type from its values with
// confidence-based selection over a capped sample. The second return
// is the non-empty value count over the full column.
func inferColumnType(values []string) (ColumnType, int) {
	nonNull := 0
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			nonNull++
		}
	}

	typeCounts := map[ColumnType]int{}
	sampled := 0
	for _, value := range sampleValues(values) {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		sampled++
		typeCounts[classifyValue(value)]++

		// Early termination: a mostly-text column is definitely text.
		if typeCounts[ColumnTypeText] > 0 && float64(typeCounts[ColumnTypeText])/float64(sampled) > earlyTextTermination {
			return ColumnTypeText, nonNull
		}
	}

	if sampled == 0 {
		return ColumnTypeText, nonNull
	}
	return selectColumnType(typeCounts, sampled), nonNull
}

// selectColumnType picks the best type from confidence analysis. Any
// text value at all pins the column to text.
func selectColumnType(typeCounts map[ColumnType]int, totalCount int) ColumnType {
	if typeCounts[ColumnTypeText] > 0 {
		return ColumnTypeText
	}

	datetimeConfidence := float64(typeCounts[ColumnTypeDatetime]) / float64(totalCount)
	realConfidence := float64(typeCounts[ColumnTypeReal]) / float64(totalCount)
	integerConfidence := float64(typeCounts[ColumnTypeInteger]) / float64(totalCount)

	if datetimeConfidence >= minTypeConfidence {
		return ColumnTypeDatetime
	}
	// Mixed numeric columns become REAL when real values carry
	// meaningful weight.
	if realConfidence >= minRealShare && (realConfidence+integerConfidence) >= minTypeConfidence {
		return ColumnTypeReal
	}
	if integerConfidence >= minTypeConfidence {
		return ColumnTypeInteger
	}

	if realConfidence > 0 {
		return ColumnTypeReal
	}
	if integerConfidence > 0 {
		return ColumnTypeInteger
	}
	if datetimeConfidence > 0 {
		return ColumnTypeDatetime
	}
	return ColumnTypeText
}

// inferColumns infers per-column profiles from the header and the
// sampled data rows.
func inferColumns(header Header, records []Record) []ColumnProfile {
	columnCount := len(header)
	if columnCount == 0 {
		return nil
	}

	columns := make([]ColumnProfile, columnCount)
	for i, name := range header {
		columns[i] = ColumnProfile{Name: name, Type: ColumnTypeText}
	}
	if len(records) == 0 {
		return columns
	}

	for i := range columnCount {
		values := make([]string, 0, len(records))
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i].Type, columns[i].NonNull = inferColumnType(values)
	}
	return columns
}
