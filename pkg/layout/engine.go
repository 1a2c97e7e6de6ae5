package layout

import (
	"math"
	"strings"

	"golang.org/x/net/html/atom"

	"noddy/pkg/html"
	"noddy/pkg/text"
)

const (
	// DefaultLineHeight is the line height multiplier applied to
	// measured text height when advancing to a new line.
	DefaultLineHeight = 1.25
	// DefaultMargin is the vertical margin used by <hr> and <br>.
	DefaultMargin = 16.0
)

// Constraints limit a layout pass.
type Constraints struct {
	MaxWidth float64
}

// DocumentMetrics is the extent of a laid out document.
type DocumentMetrics struct {
	Width  float64
	Height float64
}

// Engine lays out a document tree into a display list with a single
// running cursor. The cursor and the accumulated extent persist for the
// whole pass, so an Engine is not re-entrant and Reset must be called
// between independent passes.
type Engine struct {
	cursorX    float64
	cursorY    float64
	lineHeight float64
	margin     float64

	maxDocWidth  float64
	maxDocHeight float64
}

func NewEngine() *Engine {
	return &Engine{
		lineHeight: DefaultLineHeight,
		margin:     DefaultMargin,
	}
}

// SetLineHeight sets the line height multiplier.
func (le *Engine) SetLineHeight(lineHeight float64) {
	le.lineHeight = lineHeight
}

// SetMargin sets the vertical margin of rules and line breaks.
func (le *Engine) SetMargin(margin float64) {
	le.margin = margin
}

// Reset clears the cursor and the accumulated document extent.
func (le *Engine) Reset() {
	le.cursorX = 0
	le.cursorY = 0
	le.maxDocWidth = 0
	le.maxDocHeight = 0
}

// Layout walks the tree below root depth-first, records a box on every
// visited node and appends draw instructions to list. It returns the
// extent accumulated since the last Reset.
func (le *Engine) Layout(root *html.Node, list *DisplayList, constraints Constraints, m text.Measurer) DocumentMetrics {
	if root == nil {
		return DocumentMetrics{}
	}
	le.layoutNode(root, list, constraints, m)
	tracer().Debugf("layout done: %d entries, %.1fx%.1f", list.Len(), le.maxDocWidth, le.maxDocHeight)
	return DocumentMetrics{Width: le.maxDocWidth, Height: le.maxDocHeight}
}

func (le *Engine) layoutNode(node *html.Node, list *DisplayList, constraints Constraints, m text.Measurer) {
	style := node.EffectiveStyle()
	if node.IsElement() && style.IsHidden() {
		return
	}
	m.SetFont(style.FontString())

	// The box origin is the cursor before this node's own contribution.
	node.Box = &html.Box{Top: le.cursorY, Left: le.cursorX}

	switch {
	case node.IsText():
		le.layoutText(node, list, constraints, m)
	case node.TagName == atom.Hr.String():
		le.cursorX = 0
		le.cursorY += le.margin
		list.Add(le.cursorX, le.cursorY, node, "")
		le.cursorY += le.margin * 1.5
		node.Box.Height = le.margin * 1.5
		le.track()
	case node.TagName == atom.Br.String():
		le.cursorX = 0
		le.cursorY += le.margin
		node.Box.Height = le.margin
		le.track()
	}

	for _, child := range node.Children {
		le.layoutNode(child, list, constraints, m)
	}
}

// layoutText flows the words of a text node. Block display is decided by
// the text's own resolved style, so inline text following a block sibling
// inside a block parent also starts on a new line.
func (le *Engine) layoutText(node *html.Node, list *DisplayList, constraints Constraints, m text.Measurer) {
	if node.EffectiveStyle().IsBlock() {
		full := m.Measure(node.Text)
		le.cursorY += full.Height() * le.lineHeight
		le.cursorX = 0
		le.track()
	}

	var height, totalWidth float64
	for _, token := range strings.Split(node.Text, " ") {
		if token == "" || token == "\n" {
			continue
		}
		metrics := m.Measure(token + " ")
		// wrapped lines of one node share the tallest height seen so far
		height = math.Max(height, metrics.Height())
		width := metrics.Width
		totalWidth += width

		// keep the first line below the top edge
		if le.cursorY == 0 {
			le.cursorY += height
		}
		if le.cursorX+width > constraints.MaxWidth {
			le.cursorX = 0
			le.cursorY += height * le.lineHeight
		}

		list.Add(le.cursorX, le.cursorY, node, token)
		le.cursorX += width
		le.track()
	}

	node.Box.Height = height
	node.Box.Width = totalWidth
}

func (le *Engine) track() {
	le.maxDocWidth = math.Max(le.maxDocWidth, le.cursorX)
	le.maxDocHeight = math.Max(le.maxDocHeight, le.cursorY)
}
