// Package templates holds the shared HTML document shell and the writer the
// page components render through.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(ctx, w)
		hw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw(`<title>`)
		hw.Text(title)
		hw.Raw(`</title><link rel="stylesheet" href="/static/hypergraph.css"></head><body>`)
		hw.Component(body)
		hw.Raw(`</body></html>`)
		return hw.Err()
	})
}
