package html

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// voidTags cannot contain children and close themselves.
var voidTags = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

// IsVoid reports whether tag is a void (self-closing) tag.
func IsVoid(tag string) bool {
	a := atom.Lookup([]byte(tag))
	return a != 0 && voidTags[a]
}

// Parser builds a document tree from markup of any quality. The stack of
// open elements lives for a single Parse call.
type Parser struct {
	tokenizer *Tokenizer
	stack     []*Node
}

func NewParser(html string) *Parser {
	return &Parser{tokenizer: NewTokenizer(html)}
}

// Parse consumes the whole input and returns the document. It never
// fails: malformed markup degrades to a best-effort tree, and an input
// without any element yields a lone <html> root.
func (p *Parser) Parse() *Document {
	p.stack = p.stack[:0]
	for {
		token := p.tokenizer.NextToken()
		if token.Type == TokenEOF {
			break
		}
		switch token.Type {
		case TokenText:
			p.addText(token.Text)
		case TokenTag:
			p.addTag(token.Text)
		}
	}
	return p.finish()
}

func (p *Parser) addTag(content string) {
	tag, attributes := ParseTag(content)
	switch {
	case tag == "":
		tracer().Debugf("ignoring empty tag")
	case strings.HasPrefix(tag, "!"):
		// comments, doctype
	case strings.HasPrefix(tag, "/"):
		// The outermost element is only closed by finish.
		if len(p.stack) == 1 {
			return
		}
		if len(p.stack) == 0 {
			tracer().Errorf("no open element when closing tag <%s>", tag)
			return
		}
		p.closeTop()
	case IsVoid(tag):
		parent := p.currentParent()
		if parent == nil {
			tracer().Errorf("no open element to hold void tag <%s>", tag)
			return
		}
		parent.AddChild(NewElement(tag, parent, attributes))
	default:
		p.push(NewElement(tag, p.currentParent(), attributes))
	}
}

func (p *Parser) addText(text string) {
	parent := p.currentParent()
	if parent == nil {
		tracer().Errorf("no open element to hold text %q", text)
		return
	}
	parent.AppendText(text)
}

// finish closes everything still open and returns the outermost element.
func (p *Parser) finish() *Document {
	if len(p.stack) == 0 {
		p.addTag("html")
	}
	for len(p.stack) > 1 {
		p.closeTop()
	}
	root := p.pop()
	return &Document{Root: root}
}

// closeTop pops the top of the stack and appends it to the new top.
func (p *Parser) closeTop() {
	node := p.pop()
	parent := p.currentParent()
	if node == nil || parent == nil {
		tracer().Errorf("no parent element when closing <%s>", tagOf(node))
		return
	}
	parent.AddChild(node)
}

// currentParent returns the current parent node (top of stack)
func (p *Parser) currentParent() *Node {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// push adds a node to the stack
func (p *Parser) push(node *Node) {
	p.stack = append(p.stack, node)
}

// pop removes the top node from the stack
func (p *Parser) pop() *Node {
	if len(p.stack) == 0 {
		return nil
	}
	node := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return node
}

func tagOf(n *Node) string {
	if n == nil {
		return ""
	}
	return n.TagName
}

// Parse parses markup into a document tree.
func Parse(html string) *Document {
	return NewParser(html).Parse()
}
