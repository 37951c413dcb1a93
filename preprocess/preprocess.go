// Package preprocess resolves raw query words into in-vocabulary surface
// forms and projects whole queries into embedding vectors.
package preprocess

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AccentMode selects how diacritics are stripped from a word.
type AccentMode string

const (
	// AccentsKeep leaves the word untouched.
	AccentsKeep AccentMode = ""
	// AccentsASCII removes combining marks and drops every non-ASCII rune.
	AccentsASCII AccentMode = "ascii"
	// AccentsUnicode removes combining marks but keeps the remaining runes.
	AccentsUnicode AccentMode = "unicode"
)

// Strategy selects how multiple resolving preprocessors combine per word.
type Strategy string

const (
	// First keeps only the first preprocessor's hit for each word.
	First Strategy = "first"
	// All keeps every preprocessor's hit; identical resolved forms
	// overwrite in insertion order (last write wins).
	All Strategy = "all"
)

// ErrUnknownStrategy rejects strategies other than First and All.
var ErrUnknownStrategy = errors.New(`strategy must be "first" or "all"`)

// Preprocessor describes one word transformation to try against the model
// vocabulary. The zero value leaves words untouched. Transform, when set,
// overrides every built-in option.
type Preprocessor struct {
	Lowercase    bool
	Uppercase    bool
	Titlecase    bool
	StripAccents AccentMode
	Transform    func(string) string
}

// Apply transforms word according to the configured options.
func (p Preprocessor) Apply(word string) string {
	if p.Transform != nil {
		return p.Transform(word)
	}
	w := word
	if p.Lowercase {
		w = strings.ToLower(w)
	}
	if p.Uppercase {
		w = strings.ToUpper(w)
	}
	if p.Titlecase {
		w = cases.Title(language.Und).String(w)
	}
	if p.StripAccents != AccentsKeep {
		w = stripAccents(w, p.StripAccents)
	}
	return w
}

// String describes the active options, for warnings.
func (p Preprocessor) String() string {
	if p.Transform != nil {
		return "{custom}"
	}
	var opts []string
	if p.Lowercase {
		opts = append(opts, "lowercase")
	}
	if p.Uppercase {
		opts = append(opts, "uppercase")
	}
	if p.Titlecase {
		opts = append(opts, "titlecase")
	}
	if p.StripAccents != AccentsKeep {
		opts = append(opts, "strip_accents="+string(p.StripAccents))
	}
	if len(opts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(opts, ",") + "}"
}

var combiningMarks = runes.Remove(runes.In(unicode.Mn))

func stripAccents(word string, mode AccentMode) string {
	var t transform.Transformer
	switch mode {
	case AccentsUnicode:
		t = transform.Chain(norm.NFKD, combiningMarks, norm.NFC)
	case AccentsASCII:
		t = transform.Chain(norm.NFKD, combiningMarks,
			runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })))
	default:
		return word
	}
	out, _, err := transform.String(t, word)
	if err != nil {
		return word
	}
	return out
}
