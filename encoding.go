package csvprobe

import (
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"github.com/nao1215/csvprobe/domain/model"
)

// encodingAliases maps detector charset names that fall outside the WHATWG
// label set onto names htmlindex resolves.
var encodingAliases = map[string]string{
	"gb-18030": "gb18030",
}

// detectEncoding applies statistical byte-frequency detection over the
// sample and returns the best guess with its name lower-cased. An absent
// result is fatal for the session: downstream decoding must never run
// against a silently defaulted encoding.
func detectEncoding(sample []byte) (model.EncodingGuess, error) {
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return model.EncodingGuess{}, fmt.Errorf("%w: %v", ErrEncodingUndetected, err)
	}
	if result == nil || result.Charset == "" {
		return model.EncodingGuess{}, ErrEncodingUndetected
	}
	return model.NewEncodingGuess(result.Charset, result.Confidence), nil
}

// decoderFor resolves a canonical lower-cased encoding name to a decoding
// transformer targeting UTF-8. UTF-32 variants are handled explicitly
// because the WHATWG index dropped them; everything else goes through
// htmlindex with a BOM override so a mislabeled BOM-carrying sample still
// decodes correctly.
func decoderFor(name string) (transform.Transformer, error) {
	name = strings.ToLower(name)
	if alias, ok := encodingAliases[name]; ok {
		name = alias
	}

	switch name {
	case "utf-32be":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder(), nil
	case "utf-32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder(), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEncodingUnsupported, name)
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}

// decodeSample decodes the raw sample into canonical UTF-8 text exactly
// once. All structured parsing downstream consumes the returned text;
// re-encoding for byte-size measurement is a plain len of it.
func decodeSample(sample []byte, guess model.EncodingGuess) (string, error) {
	decoder, err := decoderFor(guess.Name())
	if err != nil {
		return "", err
	}

	decoded, _, err := transform.Bytes(decoder, sample)
	if err != nil {
		return "", fmt.Errorf("%w: decoding as %s: %v", ErrEncodingUnsupported, guess.Name(), err)
	}
	return string(decoded), nil
}
