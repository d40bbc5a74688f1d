package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(t []Token) []Kind {
	ks := make([]Kind, len(t))
	for i, tok := range t {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexAllKeywordsAndPunctuation(t *testing.T) {
	toks, err := lexAll(`module a.b; import "x.mojom"; struct S { int32 x@0 = 1; }; interface I { M() => (); };`)
	require.NoError(t, err)
	assert.Equal(t, EOF, toks[len(toks)-1].Kind)
	assert.Contains(t, kinds(toks), MODULE)
	assert.Contains(t, kinds(toks), ARROW)
	assert.Contains(t, kinds(toks), AT)
}

func TestLexNumberForms(t *testing.T) {
	cases := map[string]string{
		"42":       "42",
		"-7":       "-7",
		"+3":       "+3",
		"0xDEADBEEF": "0xDEADBEEF",
		"3.14":     "3.14",
		"1e10":     "1e10",
		"1e-10":    "1e-10",
	}
	for input, want := range cases {
		toks, err := lexAll(input)
		require.NoError(t, err, input)
		require.Equal(t, NUMBER, toks[0].Kind, input)
		assert.Equal(t, want, toks[0].Text, input)
	}
}

func TestLexNumberExponentWithoutDigitsBacktracks(t *testing.T) {
	toks, err := lexAll("1e x")
	require.NoError(t, err)
	require.Equal(t, NUMBER, toks[0].Kind)
	assert.Equal(t, "1", toks[0].Text)
	assert.Equal(t, IDENT, toks[1].Kind)
}

func TestLexStringLiteral(t *testing.T) {
	toks, err := lexAll(`"hello \" world"`)
	require.NoError(t, err)
	require.Equal(t, STRING, toks[0].Kind)
	assert.Equal(t, `"hello \" world"`, toks[0].Text)
}

func TestLexUnterminatedStringError(t *testing.T) {
	_, err := lexAll(`"unterminated`)
	assert.Error(t, err)
}

func TestLexUnterminatedBlockCommentError(t *testing.T) {
	_, err := lexAll(`/* never closes`)
	assert.Error(t, err)
}

func TestLexLineAndBlockCommentsSkipped(t *testing.T) {
	toks, err := lexAll("// comment\nmodule /* inline */ a;")
	require.NoError(t, err)
	assert.Equal(t, MODULE, toks[0].Kind)
}

func TestLexUnexpectedCharacterError(t *testing.T) {
	_, err := lexAll("module a ~ b;")
	assert.Error(t, err)
}

func TestHumanFallsBackToQuotedKind(t *testing.T) {
	assert.Equal(t, "identifier", Human(IDENT))
	assert.NotPanics(t, func() { Human(Kind(9999)) })
}
