package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified(t *testing.T) {
	assert.Empty(t, Unified("a", "b", "same\n", "same\n"))

	u := Unified("a.org", "b.org", "one\ntwo\n", "one\nthree\n")
	assert.Contains(t, u, "--- a.org")
	assert.Contains(t, u, "+++ b.org")
	assert.Contains(t, u, "-two")
	assert.Contains(t, u, "+three")
}

func TestRender(t *testing.T) {
	u := Unified("a", "b", "x\n", "y\n")

	plain, err := Render(u, FormatPlain)
	require.NoError(t, err)
	assert.Equal(t, u, plain)

	rendered, err := Render(u, FormatRendered)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(rendered))

	_, err = Render(u, Format(42))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	src := "#+TITLE: Notes\n* TODO [#A] Task :work:\n- item [[https://go.dev][Go]]\n\n#+BEGIN_SRC go\nx := 1\n#+END_SRC\n"
	r := RoundTrip("notes.org", src)

	assert.True(t, r.OK(), r.String())
	assert.NoError(t, r.ParseErr)
	assert.Contains(t, r.String(), "round trip ok")
}

func TestRoundTripPartial(t *testing.T) {
	r := RoundTrip("bad.org", "x\x01\x01\x01\x01\x01")

	assert.Error(t, r.ParseErr)
	assert.Empty(t, r.Document)
	assert.Contains(t, r.String(), "bad.org")
}
