// Package render turns model output into display HTML. The conversion is a
// short list of pattern rewrites, not a markdown parser.
package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

var rewrites = []rewrite{
	{regexp.MustCompile(`(?m)^## (.*)$`), `<h2 class="text-lg font-semibold mb-2 text-gray-800">$1</h2>`},
	{regexp.MustCompile(`(?m)^### (.*)$`), `<h3 class="text-md font-semibold mb-2 text-gray-700">$1</h3>`},
	{regexp.MustCompile(`(?m)^\* (.*)$`), `<ul class="ml-4 mb-1">• $1</ul>`},
	{regexp.MustCompile(`(?m)^- (.*)$`), `<ul class="ml-4 mb-1">• $1</ul>`},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), `<strong class="font-semibold">$1</strong>`},
	{regexp.MustCompile(`\*(.*?)\*`), `<em class="italic">$1</em>`},
	{regexp.MustCompile(`\n\n`), `<br><br>`},
	{regexp.MustCompile(`\n`), `<br>`},
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h2", "h3", "ul", "strong", "em", "br")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z0-9 -]+$`)).OnElements("h2", "h3", "ul", "strong", "em")
	return p
}

// MarkdownToHTML rewrites headings, bullets, emphasis and line breaks and
// sanitizes the result. Anything outside those patterns passes through as
// text.
func MarkdownToHTML(text string) string {
	out := text
	for _, rw := range rewrites {
		out = rw.re.ReplaceAllString(out, rw.repl)
	}
	return policy.Sanitize(out)
}
