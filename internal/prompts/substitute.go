package prompts

import (
	"sort"
	"strings"
)

// Substitute replaces every {key} in template with vars[key]. Keys missing
// from the template are ignored and placeholders without a value are kept
// verbatim. Values are inserted in one pass and never rescanned.
func Substitute(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Placeholders lists the distinct {name} markers found in template, in order
// of first appearance.
func Placeholders(template string) []string {
	var out []string
	seen := map[string]struct{}{}
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return out
		}
		end := strings.IndexByte(rest[open+1:], '}')
		if end < 0 {
			return out
		}
		name := rest[open+1 : open+1+end]
		if name != "" && !strings.ContainsAny(name, "{ \n\t") {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				out = append(out, name)
			}
			rest = rest[open+1+end+1:]
			continue
		}
		rest = rest[open+1:]
	}
}
