package styling

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type FlagClass int

const (
	FlagNeither FlagClass = iota
	FlagAffirmative
	FlagNegative
)

var flagClassNames = []string{
	"neither",
	"affirmative",
	"negative",
}

func (c FlagClass) String() string {
	return flagClassNames[c]
}

// accentFolder strips combining marks so "sí" and "si" compare equal.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var affirmativeLexicon = map[string]struct{}{
	"si":   {},
	"s":    {},
	"y":    {},
	"yes":  {},
	"true": {},
	"1":    {},
}

var negativeLexicon = map[string]struct{}{
	"no": {},
	"n":  {},
}

// ClassifyFlag classifies a raw flag attribute against the fixed
// affirmative/negative lexicon, insensitive to case, accents and
// surrounding whitespace. Anything outside the lexicon is neither.
func ClassifyFlag(raw string) FlagClass {
	folded := strings.ToLower(strings.TrimSpace(raw))
	if stripped, _, err := transform.String(accentFolder, folded); err == nil {
		folded = stripped
	}

	if _, ok := affirmativeLexicon[folded]; ok {
		return FlagAffirmative
	}
	if _, ok := negativeLexicon[folded]; ok {
		return FlagNegative
	}

	return FlagNeither
}
