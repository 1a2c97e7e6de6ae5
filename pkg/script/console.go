package script

import (
	"strings"

	"github.com/dop251/goja"
)

// ConsoleMessage is one call of console.log, console.warn or console.error.
type ConsoleMessage struct {
	Level string
	Text  string
}

// consoleAPI implements console.log, console.warn, and console.error.
type consoleAPI struct {
	messages []ConsoleMessage
}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", c.printer("log"))
	console.Set("warn", c.printer("warn"))
	console.Set("error", c.printer("error"))
	vm.Set("console", console)
}

func (c *consoleAPI) printer(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		msg := formatArgs(call.Arguments)
		c.messages = append(c.messages, ConsoleMessage{Level: level, Text: msg})
		if level == "log" {
			tracer().Infof("console: %s", msg)
		} else {
			tracer().Errorf("console.%s: %s", level, msg)
		}
		return goja.Undefined()
	}
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
