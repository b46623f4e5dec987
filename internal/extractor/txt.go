package extractor

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ExtractTXT decodes the file as UTF-8. Content is returned verbatim apart from a
// leading byte order mark; invalid UTF-8 is an error.
func ExtractTXT(data []byte) (string, error) {
	decoder := transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())

	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text file as UTF-8: %w", err)
	}

	return string(decoded), nil
}
