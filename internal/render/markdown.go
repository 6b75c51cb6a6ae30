// Package render turns event and inventory state into user-facing
// message text and button layouts, encoded for the transport's
// MarkdownV2 dialect.
package render

import (
	"fmt"
	"regexp"
	"strings"
)

// MarkdownV2 reserves these characters; everything outside a recognized
// emphasis span must be backslash-escaped.
var mdv2Escaper = strings.NewReplacer(
	"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`,
	"(", `\(`, ")", `\)`, "~", `\~`, "`", "\\`",
	">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
	"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`,
	".", `\.`, "!", `\!`, `\`, `\\`,
)

// EscapeMarkdownV2 backslash-escapes every reserved character.
func EscapeMarkdownV2(s string) string {
	return mdv2Escaper.Replace(s)
}

var emphasisRe = regexp.MustCompile(`\*(.+?)\*`)

// StylizeActions converts narration text with *emphasis* spans into
// MarkdownV2. A naive escape would either mangle reserved characters in
// the prose or break the emphasis markup, so the spans are protected
// behind placeholders, the rest is escaped, and the spans are restored
// as monospaced emphasized segments with their own escaping.
func StylizeActions(text string) string {
	var spans []string
	tmp := emphasisRe.ReplaceAllStringFunc(text, func(m string) string {
		spans = append(spans, m[1:len(m)-1])
		return fmt.Sprintf("@@ACT%d@@", len(spans)-1)
	})

	tmp = EscapeMarkdownV2(tmp)

	for i, span := range spans {
		styled := "`*" + EscapeMarkdownV2(span) + "*`"
		tmp = strings.Replace(tmp, fmt.Sprintf("@@ACT%d@@", i), styled, 1)
	}
	return tmp
}
