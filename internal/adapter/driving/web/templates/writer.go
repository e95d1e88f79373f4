package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// HTMLWriter writes component markup and keeps the first write error, so a
// component body reads as a straight sequence of calls ending in Err.
type HTMLWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewWriter creates an HTMLWriter for one component render.
func NewWriter(ctx context.Context, w io.Writer) *HTMLWriter {
	return &HTMLWriter{ctx: ctx, w: w}
}

// Err returns the first error met while writing.
func (hw *HTMLWriter) Err() error {
	return hw.err
}

// Raw writes trusted markup.
func (hw *HTMLWriter) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Text writes s escaped for element content or a quoted attribute value.
func (hw *HTMLWriter) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (hw *HTMLWriter) Attr(name, value string) {
	hw.Raw(" " + name + `="`)
	hw.Text(value)
	hw.Raw(`"`)
}

// Href writes an href attribute, replacing unsafe URL schemes.
func (hw *HTMLWriter) Href(u string) {
	hw.Attr("href", string(templ.URL(u)))
}

// Num writes a float attribute with two decimals.
func (hw *HTMLWriter) Num(name string, v float64) {
	hw.Raw(" " + name + `="` + strconv.FormatFloat(v, 'f', 2, 64) + `"`)
}

// Component renders a child component.
func (hw *HTMLWriter) Component(c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}
