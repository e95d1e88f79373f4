// Package layout positions repositories into language clusters on a fixed canvas.
// Every function is pure: the same input list always yields the same graph.
package layout

import (
	"math"
	"sort"

	"github.com/ericfisherdev/hypergraph/internal/domain/model"
)

// Canvas dimensions.
const (
	CanvasWidth  = 1200.0
	CanvasHeight = 600.0
)

const (
	// Cluster anchors sit on an ellipse around the canvas centre.
	anchorRadiusX = 250.0
	anchorRadiusY = 200.0

	// Cluster labels sit on a wider ellipse outside the anchors.
	labelRadiusX = 320.0
	labelRadiusY = 250.0

	spreadPerNode = 15.0
	maxSpread     = 150.0

	minNodeRadius = 5.0
	maxNodeRadius = 15.0
)

// Center returns the centre of the canvas.
func Center() model.Point {
	return model.Point{X: CanvasWidth / 2, Y: CanvasHeight / 2}
}

// GroupByLanguage partitions repos by their exact language key. Groups are
// sorted by key; members keep their order from repos. The empty language is a
// group of its own.
func GroupByLanguage(repos []model.Repository) []model.LanguageGroup {
	index := make(map[string]int)
	var groups []model.LanguageGroup

	for _, repo := range repos {
		i, ok := index[repo.Language]
		if !ok {
			i = len(groups)
			index[repo.Language] = i
			groups = append(groups, model.LanguageGroup{Language: repo.Language})
		}
		groups[i].Repositories = append(groups[i].Repositories, repo)
	}

	sort.Slice(groups, func(a, b int) bool {
		return groups[a].Language < groups[b].Language
	})

	return groups
}

// ClusterAngle returns the angle of group i out of n, in radians.
func ClusterAngle(i, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(i) / float64(n) * 2 * math.Pi
}

// NodeRadius maps a fork count to a visual radius in [5, 15]. It is
// non-decreasing in forks; negative counts are treated as zero.
func NodeRadius(forks int) float64 {
	if forks < 0 {
		forks = 0
	}
	r := 3 + math.Sqrt(float64(forks)/100)
	return math.Max(minNodeRadius, math.Min(r, maxNodeRadius))
}

// Compute lays out repos on the canonical canvas.
func Compute(repos []model.Repository) model.Graph {
	center := Center()
	groups := GroupByLanguage(repos)

	graph := model.Graph{
		Width:    CanvasWidth,
		Height:   CanvasHeight,
		Center:   center,
		Clusters: make([]model.Cluster, 0, len(groups)),
		Nodes:    make([]model.Node, 0, len(repos)),
	}

	for i, group := range groups {
		angle := ClusterAngle(i, len(groups))
		anchor := model.Point{
			X: center.X + math.Cos(angle)*anchorRadiusX,
			Y: center.Y + math.Sin(angle)*anchorRadiusY,
		}
		color := ColorFor(group.Language)

		graph.Clusters = append(graph.Clusters, model.Cluster{
			Language: group.Language,
			Angle:    angle,
			Anchor:   anchor,
			Label: model.Point{
				X: center.X + math.Cos(angle)*labelRadiusX,
				Y: center.Y + math.Sin(angle)*labelRadiusY,
			},
			Color: color,
			Size:  len(group.Repositories),
		})

		count := float64(len(group.Repositories))
		spread := math.Min(count*spreadPerNode, maxSpread)
		tangent := angle + math.Pi/2

		for j, repo := range group.Repositories {
			offset := ((float64(j) - count/2) / count) * spread
			graph.Nodes = append(graph.Nodes, model.Node{
				Position: model.Point{
					X: anchor.X + offset*math.Cos(tangent),
					Y: anchor.Y + offset*math.Sin(tangent),
				},
				Radius:     NodeRadius(repo.Forks),
				Color:      color,
				Language:   group.Language,
				Repository: repo,
			})
		}
	}

	return graph
}
