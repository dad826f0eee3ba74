package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToHTMLHeadings(t *testing.T) {
	got := MarkdownToHTML("## Risk Summary\n### Details")

	assert.Contains(t, got, `<h2 class="text-lg font-semibold mb-2 text-gray-800">Risk Summary</h2>`)
	assert.Contains(t, got, `<h3 class="text-md font-semibold mb-2 text-gray-700">Details</h3>`)
}

func TestMarkdownToHTMLBullets(t *testing.T) {
	got := MarkdownToHTML("* first\n- second")

	assert.Contains(t, got, `<ul class="ml-4 mb-1">• first</ul>`)
	assert.Contains(t, got, `<ul class="ml-4 mb-1">• second</ul>`)
}

func TestMarkdownToHTMLEmphasis(t *testing.T) {
	got := MarkdownToHTML("This is **important** and *subtle*.")

	assert.Equal(t, `This is <strong class="font-semibold">important</strong> and <em class="italic">subtle</em>.`, got)
}

func TestMarkdownToHTMLLineBreaks(t *testing.T) {
	got := MarkdownToHTML("one\n\ntwo\nthree")

	assert.True(t, strings.HasPrefix(got, "one<br"), got)
	assert.Equal(t, 3, strings.Count(got, "<br"))
	assert.NotContains(t, got, "\n")
	assert.True(t, strings.HasSuffix(got, "three"), got)
}

func TestMarkdownToHTMLPlainText(t *testing.T) {
	assert.Equal(t, "Nothing to format", MarkdownToHTML("Nothing to format"))
	assert.Equal(t, "", MarkdownToHTML(""))
}

func TestMarkdownToHTMLSanitizes(t *testing.T) {
	got := MarkdownToHTML(`## Title<script>alert(1)</script>` + "\n" + `<a href="javascript:x" onclick="y">link</a>`)

	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "alert(1)")
	assert.NotContains(t, got, "onclick")
	assert.NotContains(t, got, "<a ")
	assert.Contains(t, got, "link")
	assert.Contains(t, got, "<h2")
}
