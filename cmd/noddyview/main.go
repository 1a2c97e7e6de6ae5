package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"noddy/pkg/engine"
	"noddy/pkg/resource"
)

const sample = `<html><body>
<h1>noddy</h1>
<p>Edit the markup on the left and press <b>Render</b>.
Words wrap at the width of the page, <i>styles</i> come from tag defaults,
and <a href="https://example.com/">links</a> can be clicked.</p>
<hr>
<p id="js"></p>
<script>document.getElementById("js").textContent = "Written by a script.";</script>
</body></html>`

func main() {
	a := app.New()
	w := a.NewWindow("noddy")
	w.Resize(fyne.NewSize(1200, 800))

	status := widget.NewLabel("Enter a URL or edit the source")
	source := widget.NewMultiLineEntry()
	source.SetText(sample)

	fetcher := resource.NewFetcher("")
	opts := engine.DefaultOptions()
	opts.Width = 600
	e := engine.New(opts)

	show := func(view *pageView, src string) {
		f := e.Render(src)
		view.Show(f)
		msg := fmt.Sprintf("%d entries, %.0fx%.0f", f.List.Len(), f.Metrics.Width, f.Metrics.Height)
		if f.ScriptErr != nil {
			msg += " (script errors: " + f.ScriptErr.Error() + ")"
		}
		status.SetText(msg)
	}

	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com or a file path")

	var view *pageView
	navigate := func(location string) {
		status.SetText("Loading " + location + "...")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			next := fetcher.Follow(location)
			src, err := next.FetchPage(ctx, "")
			fyne.Do(func() {
				if err != nil {
					log.Printf("load %s: %v", location, err)
					status.SetText("Error: " + err.Error())
					return
				}
				fetcher = next
				urlEntry.SetText(next.Base())
				source.SetText(src)
				show(view, src)
				w.SetTitle("noddy - " + next.Base())
			})
		}()
	}
	view = newPageView(navigate)
	urlEntry.OnSubmitted = navigate

	renderButton := widget.NewButton("Render", func() {
		show(view, source.Text)
	})

	editor := container.NewBorder(nil, renderButton, nil, nil, source)
	split := container.NewHSplit(editor, container.NewScroll(view))
	split.Offset = 0.4
	content := container.NewBorder(urlEntry, status, nil, nil, split)
	w.SetContent(content)

	show(view, sample)
	w.ShowAndRun()
}
