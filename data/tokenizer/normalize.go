package tokenizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalizer turns raw input into clean Unicode text. Implementations must be
// total and idempotent.
type Normalizer interface {
	NormalizeUnicode(raw string) string
}

// UnicodeNormalizer drops bytes that are not valid UTF-8 and composes the
// result to NFC.
type UnicodeNormalizer struct{}

func NewUnicodeNormalizer() UnicodeNormalizer { return UnicodeNormalizer{} }

func (UnicodeNormalizer) NormalizeUnicode(raw string) string {
	return norm.NFC.String(strings.ToValidUTF8(raw, ""))
}
