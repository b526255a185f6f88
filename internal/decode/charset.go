package decode

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/budgetcsv/internal/importer"
)

// DefaultEncoding is used when no encoding name is given.
const DefaultEncoding = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// aliases covers the names bank exports are usually labelled with that the
// IANA index spells differently.
var aliases = map[string]encoding.Encoding{
	"latin-1":      charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"cp850":        charmap.CodePage850,
	"iso-8859-15":  charmap.ISO8859_15,
}

// ToUTF8 converts data from the named encoding to UTF-8 text.
func ToUTF8(data []byte, name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "utf-8" || key == "utf8" {
		text := bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(text) {
			return nil, decodeFailure(name, nil)
		}
		return text, nil
	}

	enc, ok := aliases[key]
	if !ok {
		var err error
		enc, err = ianaindex.IANA.Encoding(key)
		if err != nil || enc == nil {
			return nil, importer.ParsingError(fmt.Sprintf("unknown encoding '%s'", name), err)
		}
	}

	text, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, decodeFailure(name, err)
	}
	return text, nil
}

func decodeFailure(name string, cause error) error {
	return importer.ParsingError(fmt.Sprintf(
		"Failed to decode file with encoding '%s'. Try a different encoding (e.g., 'latin-1', 'cp1252')",
		name), cause)
}
