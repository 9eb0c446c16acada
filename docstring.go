package toolbox

import (
	"strings"
)

// sectionHeaders open the structured part of a documentation string.
var sectionHeaders = []string{
	"args:", "arguments:", "parameters:", "params:",
	"returns:", "return:", "yields:", "raises:",
	"example:", "examples:", "attributes:", "note:",
}

// ShortDescription extracts the short description from documentation text: the
// first non-blank line, trimmed. Documentation that opens directly with a
// section header ("Args:", "Returns:", ...) has no short description.
func ShortDescription(doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return ""
	}
	first, _, _ := strings.Cut(doc, "\n")
	first = strings.TrimSpace(first)
	lower := strings.ToLower(first)
	for _, h := range sectionHeaders {
		if lower == h {
			return ""
		}
	}
	return first
}
