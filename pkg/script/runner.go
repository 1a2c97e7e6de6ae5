package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"noddy/pkg/html"
)

// Runner executes the <script> elements of a document against its tree.
type Runner struct {
	vm      *goja.Runtime
	console *consoleAPI
}

// NewRunner creates a runner with a fresh goja runtime.
func NewRunner() *Runner {
	vm := goja.New()
	c := &consoleAPI{}
	c.register(vm)
	return &Runner{vm: vm, console: c}
}

// Run binds `document` to root and executes every script element found
// below root, in document order. A failing script does not stop the
// following ones; all failures are returned joined.
func (r *Runner) Run(root *html.Node) error {
	if root == nil {
		return nil
	}
	registerDocument(r.vm, root)

	var errs []error
	for i, s := range root.ElementsByTag("script") {
		src := s.TextContent()
		if strings.TrimSpace(src) == "" {
			continue
		}
		if _, err := r.vm.RunString(src); err != nil {
			tracer().Errorf("script %d failed: %v", i, err)
			errs = append(errs, fmt.Errorf("script %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Console returns the console output of all scripts run so far.
func (r *Runner) Console() []ConsoleMessage {
	return r.console.messages
}
