package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"noddy/pkg/engine"
	"noddy/pkg/html"
	"noddy/pkg/resource"
)

const pipeName = "-"

func main() {
	opts := engine.DefaultOptions()
	flag.Float64Var(&opts.Width, "w", opts.Width, "viewport width in pixels")
	flag.Float64Var(&opts.DevicePixelRatio, "dpr", opts.DevicePixelRatio, "device pixel ratio")
	flag.BoolVar(&opts.RunScripts, "scripts", opts.RunScripts, "run <script> elements")
	flag.BoolVar(&opts.DebugHitboxes, "hitboxes", false, "shade link hit boxes")
	output := flag.String("o", "output.png", "output file path, - for stdout")
	format := flag.String("format", "", "output format, png or pdf (default: from the output file extension)")
	dump := flag.Bool("dump", false, "print the laid out document tree to stderr")
	timeout := flag.Duration("timeout", 30*time.Second, "timeout for fetching the page")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: noddy [flags] <input.html|url|->\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	in := pipeName
	if flag.NArg() > 0 {
		in = flag.Arg(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	src, err := readSource(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading page: %v\n", err)
		os.Exit(1)
	}

	e := engine.New(opts)
	page := e.Load(src)
	if page.ScriptErr != nil {
		fmt.Fprintf(os.Stderr, "Script errors: %v\n", page.ScriptErr)
	}
	for _, msg := range page.Console {
		fmt.Fprintf(os.Stderr, "console.%s: %s\n", msg.Level, msg.Text)
	}
	if *dump {
		fmt.Fprint(os.Stderr, html.Dump(page.Document.Root))
	}

	dst, err := openOutput(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer dst.Close()

	switch outputFormat(*format, *output) {
	case "pdf":
		err = e.WritePDF(dst, page)
	case "png":
		err = png.Encode(dst, e.Paint(page).Image)
	default:
		err = fmt.Errorf("unknown output format %q", *format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Rendered %s to %s\n", in, *output)
	fmt.Fprintf(os.Stderr, "Document: %.0fx%.0f, %d display list entries\n",
		page.Metrics.Width, page.Metrics.Height, page.List.Len())
}

// readSource reads the page from stdin, a file or a URL.
func readSource(ctx context.Context, in string) (string, error) {
	if in == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return "", errors.New("`-` should be used with a pipe for stdin")
		}
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	return resource.NewFetcher("").FetchPage(ctx, in)
}

func openOutput(out string) (io.WriteCloser, error) {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	return os.Create(out)
}

func outputFormat(format, out string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if strings.EqualFold(filepath.Ext(out), ".pdf") {
		return "pdf"
	}
	return "png"
}
