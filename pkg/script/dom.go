package script

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"noddy/pkg/html"
)

// domContext holds shared state for DOM bindings within a single execution.
// It maintains a node-to-proxy cache so the same JS object is returned for
// the same underlying *html.Node (needed for === identity checks).
type domContext struct {
	vm    *goja.Runtime
	root  *html.Node
	cache map[*html.Node]goja.Value
}

func newDOMContext(vm *goja.Runtime, root *html.Node) *domContext {
	return &domContext{
		vm:    vm,
		root:  root,
		cache: make(map[*html.Node]goja.Value),
	}
}

// registerDocument sets up the global `document` object on the goja runtime.
func registerDocument(vm *goja.Runtime, root *html.Node) *domContext {
	ctx := newDOMContext(vm, root)

	docObj := vm.NewObject()
	docObj.Set("documentElement", ctx.elementProxy(root))
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		node := root.ElementByID(call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return ctx.elementProxy(node)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(root.ElementsByTag(strings.ToLower(call.Arguments[0].String())))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		return ctx.elementProxy(html.NewElement(call.Arguments[0].String(), nil, nil))
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return ctx.elementProxy(html.NewText(text))
	})

	vm.Set("document", docObj)
	return ctx
}

// elementArray creates a JS array of Element proxies.
func (ctx *domContext) elementArray(nodes []*html.Node) goja.Value {
	arr := ctx.vm.NewArray()
	for i, n := range nodes {
		arr.Set(strconv.Itoa(i), ctx.elementProxy(n))
	}
	arr.Set("length", len(nodes))
	return arr
}

// elementProxy creates (or retrieves from cache) a JS DynamicObject wrapping an html.Node.
func (ctx *domContext) elementProxy(node *html.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

// unwrapNode extracts the *html.Node from a goja value that wraps an elementAccessor.
func (ctx *domContext) unwrapNode(val goja.Value) *html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for node, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return node
		}
	}
	return nil
}

// elementAccessor implements goja.DynamicObject to intercept property access
// on DOM element proxies.
type elementAccessor struct {
	ctx  *domContext
	node *html.Node
}

var elementKeys = []string{
	"nodeType", "nodeName", "nodeValue", "tagName", "id", "textContent",
	"getAttribute", "setAttribute", "hasAttribute",
	"children", "childNodes", "parentElement",
	"firstChild", "lastChild", "nextSibling", "previousSibling",
	"appendChild", "removeChild", "appendText",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	node := e.node

	switch key {
	case "nodeType":
		if node.IsText() {
			return vm.ToValue(3) // Node.TEXT_NODE
		}
		return vm.ToValue(1) // Node.ELEMENT_NODE
	case "nodeName":
		if node.IsText() {
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(node.TagName))
	case "nodeValue":
		if node.IsText() {
			return vm.ToValue(node.Text)
		}
		return goja.Null()
	case "tagName":
		if node.IsText() {
			return goja.Undefined()
		}
		return vm.ToValue(strings.ToUpper(node.TagName))
	case "id":
		id, _ := node.GetAttribute("id")
		return vm.ToValue(id)
	case "textContent":
		return vm.ToValue(node.TextContent())
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			val, ok := node.GetAttribute(strings.ToLower(call.Arguments[0].String()))
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				return goja.Undefined()
			}
			node.SetAttribute(strings.ToLower(call.Arguments[0].String()), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			_, ok := node.GetAttribute(strings.ToLower(call.Arguments[0].String()))
			return vm.ToValue(ok)
		})
	case "children":
		var elements []*html.Node
		for _, child := range node.Children {
			if child.IsElement() {
				elements = append(elements, child)
			}
		}
		return e.ctx.elementArray(elements)
	case "childNodes":
		return e.ctx.elementArray(node.Children)
	case "parentElement":
		if node.Parent != nil {
			return e.ctx.elementProxy(node.Parent)
		}
		return goja.Null()
	case "firstChild":
		if len(node.Children) == 0 {
			return goja.Null()
		}
		return e.ctx.elementProxy(node.Children[0])
	case "lastChild":
		if len(node.Children) == 0 {
			return goja.Null()
		}
		return e.ctx.elementProxy(node.Children[len(node.Children)-1])
	case "nextSibling":
		return e.sibling(1)
	case "previousSibling":
		return e.sibling(-1)
	case "appendChild":
		return vm.ToValue(e.appendChildFn())
	case "removeChild":
		return vm.ToValue(e.removeChildFn())
	case "appendText":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 && node.IsElement() {
				node.AppendText(call.Arguments[0].String())
			}
			return goja.Undefined()
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		setTextContent(e.node, val.String())
		return true
	case "id":
		e.node.SetAttribute("id", val.String())
		return true
	case "nodeValue":
		if e.node.IsText() {
			e.node.Text = val.String()
		}
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}

// sibling returns the sibling offset positions away from the wrapped node.
func (e *elementAccessor) sibling(offset int) goja.Value {
	parent := e.node.Parent
	if parent == nil {
		return goja.Null()
	}
	for i, c := range parent.Children {
		if c != e.node {
			continue
		}
		if j := i + offset; j >= 0 && j < len(parent.Children) {
			return e.ctx.elementProxy(parent.Children[j])
		}
		break
	}
	return goja.Null()
}

// appendChildFn returns a JS function that implements node.appendChild(child).
func (e *elementAccessor) appendChildFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'appendChild': 1 argument required"))
		}
		child := e.ctx.unwrapNode(call.Arguments[0])
		if child == nil {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'appendChild': parameter is not a Node"))
		}
		if !e.node.IsElement() {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'appendChild': this node cannot have children"))
		}
		for p := e.node; p != nil; p = p.Parent {
			if p == child {
				panic(e.ctx.vm.NewTypeError("Failed to execute 'appendChild': the new child is an ancestor of the parent"))
			}
		}
		e.node.AppendChild(child)
		return e.ctx.elementProxy(child)
	}
}

// removeChildFn returns a JS function that implements node.removeChild(child).
func (e *elementAccessor) removeChildFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'removeChild': 1 argument required"))
		}
		child := e.ctx.unwrapNode(call.Arguments[0])
		if child == nil {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'removeChild': parameter is not a Node"))
		}
		removed := e.node.RemoveChild(child)
		if removed == nil {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'removeChild': The node to be removed is not a child of this node"))
		}
		return e.ctx.elementProxy(removed)
	}
}

// setTextContent replaces all children with a single text node.
func setTextContent(node *html.Node, text string) {
	if node.IsText() {
		node.Text = text
		return
	}
	for _, c := range node.Children {
		c.Parent = nil
	}
	node.Children = nil
	if text != "" {
		node.AppendText(text)
	}
}
