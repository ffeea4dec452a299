package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Formatting(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("Replaced the **fuser** unit.\nSee `E-204`.")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>fuser</strong>")
	assert.Contains(t, out, "<code>E-204</code>")
	assert.Contains(t, out, "<br")
}

func TestRender_StripsScripts(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("hello <script>alert(1)</script> <a href=\"javascript:alert(1)\">x</a>")
	require.NoError(t, err)

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}

func TestRender_Links(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("Manual: https://example.com/manual.pdf")
	require.NoError(t, err)

	assert.Contains(t, out, `href="https://example.com/manual.pdf"`)
	assert.Contains(t, out, `rel="nofollow`)
}
