package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/hypergraph/internal/adapter/driving/web/viewmodel"
)

const (
	centerNodeRadius = 20.0
	labelWidth       = 80.0
	labelHeight      = 24.0
)

// GraphView renders the language cards followed by the network diagram.
func GraphView(cards []vm.LanguageCardViewModel, graph vm.GraphViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		hw.Raw(`<section class="graph-view"><div class="cards">`)
		for _, card := range cards {
			hw.Component(LanguageCard(card))
		}
		hw.Raw(`</div><div class="network"><h3>Organization Network</h3>`)
		hw.Component(Network(graph))
		hw.Raw(`</div></section>`)
		return hw.Err()
	})
}

// LanguageCard renders the statistics of one language group.
func LanguageCard(c vm.LanguageCardViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		hw.Raw(`<div class="card"`)
		hw.Attr("style", "border-top-color: "+c.Color)
		hw.Raw(`><h3>`)
		hw.Text(c.Name)
		hw.Raw(`</h3><p class="count">`)
		hw.Raw(strconv.Itoa(c.Count))
		hw.Raw(` repositories</p><div class="preview">`)
		for _, link := range c.Preview {
			hw.Raw(`<a target="_blank" rel="noopener noreferrer"`)
			hw.Href(link.URL)
			hw.Raw(`>`)
			hw.Text(link.Name)
			hw.Raw(`</a>`)
		}
		if c.More > 0 {
			hw.Raw(`<p class="more">+`)
			hw.Raw(strconv.Itoa(c.More))
			hw.Raw(` more</p>`)
		}
		hw.Raw(`</div></div>`)
		return hw.Err()
	})
}

// Network renders the SVG diagram: spokes, repository nodes, the centre node
// and the cluster label ring, in that paint order.
func Network(g vm.GraphViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := templates.NewWriter(ctx, w)
		hw.Raw(`<svg xmlns="http://www.w3.org/2000/svg" class="network-graph"`)
		hw.Num("width", g.Width)
		hw.Num("height", g.Height)
		hw.Raw(` viewBox="0 0 `)
		hw.Raw(strconv.FormatFloat(g.Width, 'f', -1, 64) + " " + strconv.FormatFloat(g.Height, 'f', -1, 64))
		hw.Raw(`">`)

		for _, s := range g.Spokes {
			hw.Raw(`<line class="spoke"`)
			hw.Num("x1", g.CenterX)
			hw.Num("y1", g.CenterY)
			hw.Num("x2", s.X2)
			hw.Num("y2", s.Y2)
			hw.Raw(` stroke="currentColor" stroke-width="2" stroke-opacity="0.2"/>`)
		}

		for _, n := range g.Nodes {
			hw.Raw(`<g class="node"><a target="_blank" rel="noopener noreferrer"`)
			hw.Href(n.URL)
			hw.Raw(`><circle`)
			hw.Num("cx", n.X)
			hw.Num("cy", n.Y)
			hw.Num("r", n.R)
			hw.Attr("fill", n.Color)
			hw.Raw(` opacity="0.8"><title>`)
			hw.Text(n.Title)
			hw.Raw(`</title></circle></a></g>`)
		}

		hw.Raw(`<circle class="center-node"`)
		hw.Num("cx", g.CenterX)
		hw.Num("cy", g.CenterY)
		hw.Num("r", centerNodeRadius)
		hw.Raw(` opacity="0.8"/><text class="center-label"`)
		hw.Num("x", g.CenterX)
		hw.Num("y", g.CenterY)
		hw.Raw(` text-anchor="middle" dominant-baseline="middle">`)
		hw.Text(g.Organization)
		hw.Raw(`</text>`)

		for _, l := range g.Labels {
			hw.Raw(`<g class="cluster-label"><rect`)
			hw.Num("x", l.X-labelWidth/2)
			hw.Num("y", l.Y-labelHeight/2)
			hw.Num("width", labelWidth)
			hw.Num("height", labelHeight)
			hw.Raw(` rx="4"`)
			hw.Attr("fill", l.Color)
			hw.Raw(` opacity="0.9"/><text`)
			hw.Num("x", l.X)
			hw.Num("y", l.Y)
			hw.Raw(` text-anchor="middle" dominant-baseline="middle">`)
			hw.Text(l.Text)
			hw.Raw(`</text></g>`)
		}

		hw.Raw(`</svg>`)
		return hw.Err()
	})
}
