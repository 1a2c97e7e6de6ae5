package html

import (
	"fmt"
	"strconv"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump renders the tree below n as indented text, one line per node.
// Boxes are shown for nodes that have been laid out.
func Dump(n *Node) string {
	if n == nil {
		return "<nil>\n"
	}
	printer := tp.New()
	dumpNode(printer, n)
	return printer.String()
}

func dumpNode(p tp.Tree, n *Node) {
	if len(n.Children) == 0 {
		p.AddNode(label(n))
		return
	}
	branch := p.AddBranch(label(n))
	for _, c := range n.Children {
		dumpNode(branch, c)
	}
}

func label(n *Node) string {
	var sb strings.Builder
	if n.Type == TextNode {
		sb.WriteString(strconv.Quote(n.Text))
	} else {
		sb.WriteByte('<')
		sb.WriteString(n.TagName)
		for _, a := range n.Attributes {
			fmt.Fprintf(&sb, " %s=%q", a.Key, a.Value)
		}
		sb.WriteByte('>')
	}
	if n.Box != nil {
		fmt.Fprintf(&sb, " @(%.1f,%.1f) %.1fx%.1f", n.Box.Left, n.Box.Top, n.Box.Width, n.Box.Height)
	}
	return sb.String()
}
