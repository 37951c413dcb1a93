package preprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyIdentity(t *testing.T) {
	assert.Equal(t, "Home", Preprocessor{}.Apply("Home"))
}

func TestApplyCase(t *testing.T) {
	assert.Equal(t, "home", Preprocessor{Lowercase: true}.Apply("HOME"))
	assert.Equal(t, "HOME", Preprocessor{Uppercase: true}.Apply("home"))
	assert.Equal(t, "Home", Preprocessor{Titlecase: true}.Apply("home"))
}

func TestApplyStripAccents(t *testing.T) {
	assert.Equal(t, "cafe", Preprocessor{StripAccents: AccentsUnicode}.Apply("café"))
	assert.Equal(t, "nino", Preprocessor{StripAccents: AccentsASCII}.Apply("niño"))
	// ascii mode also drops runes with no ASCII decomposition
	assert.Equal(t, "uvre", Preprocessor{StripAccents: AccentsASCII}.Apply("œuvre"))
}

func TestApplyCombined(t *testing.T) {
	p := Preprocessor{Lowercase: true, StripAccents: AccentsUnicode}
	assert.Equal(t, "cafe", p.Apply("CAFÉ"))
}

func TestApplyTransformOverrides(t *testing.T) {
	p := Preprocessor{Lowercase: true, Transform: strings.ToUpper}
	assert.Equal(t, "HOME", p.Apply("home"))
}

func TestPreprocessorString(t *testing.T) {
	assert.Equal(t, "{}", Preprocessor{}.String())
	assert.Equal(t, "{lowercase,strip_accents=ascii}",
		Preprocessor{Lowercase: true, StripAccents: AccentsASCII}.String())
	assert.Equal(t, "{custom}", Preprocessor{Transform: strings.ToUpper}.String())
}
