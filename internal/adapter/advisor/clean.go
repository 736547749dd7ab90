package advisor

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CleanText turns a model answer into plain prose: an outer code fence is
// dropped and markdown markup is flattened, keeping list items on their own
// lines.
func CleanText(input string) string {
	s := stripFence(strings.TrimSpace(input))
	if s == "" {
		return ""
	}

	src := []byte(s)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && n.NextSibling() != nil {
				if _, ok := n.(*ast.ListItem); ok {
					b.WriteString("\n")
				} else {
					b.WriteString("\n\n")
				}
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.ListItem:
			b.WriteString("- ")
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	// Drop the info string, e.g. ```markdown.
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(strings.TrimSpace(s[:i]), " \t") {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
