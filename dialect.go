package csvprobe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/csvprobe/domain/model"
)

// candidateDelimiters are evaluated in preference order when no hint is
// supplied.
var candidateDelimiters = []rune{',', '\t', ';', '|', ':'}

// delimiterConsistencyMin is the fraction of sample lines that must agree on
// a delimiter's per-line count for the candidate to qualify.
const delimiterConsistencyMin = 0.9

// minQuoteVotes is the number of delimiter-adjacent quoted fields required
// before quote detection trusts the quoted-field evidence.
const minQuoteVotes = 2

// quotedFieldPatterns match a quoted field adjacent to a delimiter or line
// boundary, one pattern per quote character since RE2 has no backreferences.
var quotedFieldPatterns = map[rune]*regexp.Regexp{
	'"':  regexp.MustCompile(`(?m)(^|[,\t;|:]) ?"[^"\n]*" ?([,\t;|:]|$)`),
	'\'': regexp.MustCompile(`(?m)(^|[,\t;|:]) ?'[^'\n]*' ?([,\t;|:]|$)`),
}

// sniffDialect infers delimiter, quote character, and line terminator from
// the decoded sample text. A non-zero hint restricts delimiter detection to
// that single candidate. Every failure here is fatal for the profiling
// session: the caller restarts from scratch, usually with a corrected hint.
func sniffDialect(text string, hint rune) (model.Dialect, error) {
	if len([]rune(text)) < minDecodedSampleChars {
		return model.Dialect{}, ErrSampleTooSmall
	}

	terminator := detectLineTerminator(text)
	lines := sampleLines(text)

	candidates := candidateDelimiters
	if hint != 0 {
		candidates = []rune{hint}
	}

	quote, quotedDelim := guessQuoteAndDelimiter(text)

	var delimiter rune
	if hint == 0 && quotedDelim != 0 {
		delimiter = quotedDelim
	} else {
		best, ok := guessDelimiterByFrequency(lines, candidates, quote)
		if !ok {
			if hint != 0 {
				return model.Dialect{}, fmt.Errorf("%w (hint: %q)", ErrDelimiterHintMismatch, hint)
			}
			return model.Dialect{}, ErrDialectUndetected
		}
		delimiter = best
	}

	return model.NewDialect(delimiter, quote, terminator)
}

// detectLineTerminator picks the dominant terminator among CRLF, LF, and CR.
// Ties fall back to LF.
func detectLineTerminator(text string) string {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	cr := strings.Count(text, "\r") - crlf

	switch {
	case crlf > lf && crlf >= cr:
		return model.LineTerminatorCRLF
	case cr > lf && cr > crlf:
		return model.LineTerminatorCR
	default:
		return model.LineTerminatorLF
	}
}

// sampleLines splits the sample into complete non-empty lines. The final
// line is dropped when the sample does not end on a terminator, since a
// byte-bounded read almost always cuts mid-line.
func sampleLines(text string) []string {
	endsOnTerminator := strings.HasSuffix(text, "\n") || strings.HasSuffix(text, "\r")

	normalized := strings.ReplaceAll(text, model.LineTerminatorCRLF, "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	split := strings.Split(normalized, "\n")

	if !endsOnTerminator && len(split) > 1 {
		split = split[:len(split)-1]
	}

	lines := make([]string, 0, len(split))
	for _, line := range split {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// guessQuoteAndDelimiter looks for quoted fields sitting next to delimiters.
// When enough evidence exists it returns the quote character and the most
// frequently adjacent delimiter; otherwise it returns the default quote and
// a zero delimiter.
func guessQuoteAndDelimiter(text string) (rune, rune) {
	for _, quote := range []rune{'"', '\''} {
		matches := quotedFieldPatterns[quote].FindAllStringSubmatch(text, -1)
		if len(matches) < minQuoteVotes {
			continue
		}

		votes := make(map[rune]int)
		for _, m := range matches {
			for _, group := range []string{m[1], m[2]} {
				if group != "" {
					votes[[]rune(group)[0]]++
				}
			}
		}

		var best rune
		bestVotes := 0
		for _, candidate := range candidateDelimiters {
			if votes[candidate] > bestVotes {
				best = candidate
				bestVotes = votes[candidate]
			}
		}
		if bestVotes >= minQuoteVotes {
			return quote, best
		}
		return quote, 0
	}
	return model.DefaultQuote, 0
}

// guessDelimiterByFrequency scores each candidate by how consistently it
// appears, outside quotes, across the sample lines. A candidate qualifies
// when at least delimiterConsistencyMin of the lines share the candidate's
// modal positive count; the most consistent qualifier wins, with earlier
// candidates breaking ties.
func guessDelimiterByFrequency(lines []string, candidates []rune, quote rune) (rune, bool) {
	if len(lines) == 0 {
		return 0, false
	}

	var best rune
	bestConsistency := 0.0

	for _, candidate := range candidates {
		counts := make(map[int]int)
		for _, line := range lines {
			counts[countOutsideQuotes(line, candidate, quote)]++
		}

		mode, modeLines := 0, 0
		for count, occurrences := range counts {
			if occurrences > modeLines {
				mode = count
				modeLines = occurrences
			}
		}
		if mode == 0 {
			continue
		}

		consistency := float64(modeLines) / float64(len(lines))
		if consistency >= delimiterConsistencyMin && consistency > bestConsistency {
			best = candidate
			bestConsistency = consistency
		}
	}

	return best, best != 0
}

// countOutsideQuotes counts delimiter occurrences that are not inside a
// quoted region of the line.
func countOutsideQuotes(line string, delimiter, quote rune) int {
	count := 0
	inQuotes := false
	for _, r := range line {
		switch r {
		case quote:
			inQuotes = !inQuotes
		case delimiter:
			if !inQuotes {
				count++
			}
		}
	}
	return count
}
