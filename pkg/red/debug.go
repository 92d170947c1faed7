package red

import (
	"strconv"
	"strings"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// Debug renders the subtree below n one element per line, indented by depth:
//
//	BIN_EXPR@0..5
//	  NUMBER@0..1 "1"
//
// Kind names come from namer; unnamed kinds print as KIND_n.
func (n *Node) Debug(namer syntax.KindNamer) string {
	var sb strings.Builder
	for el, depth := range n.walk() {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(syntax.NameOf(namer, el.Kind()))
		sb.WriteByte('@')
		sb.WriteString(el.TextRange().String())
		if tok, ok := el.AsToken(); ok {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Quote(tok.Text()))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
