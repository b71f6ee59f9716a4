package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/quadtree"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/space"
)

type Options struct {
	Scale      float64
	ShowTree   bool
	ShowLinks  bool
	Background string
	BodyColor  string
	TreeColor  string
	TrailColor string
}

func DefaultOptions() Options {
	return Options{
		Scale:      1,
		ShowTree:   true,
		Background: "#0a0a0a",
		BodyColor:  "#ffffff",
		TreeColor:  "#3a3a66",
		TrailColor: "#00ccff",
	}
}

func header(sb *strings.Builder, viewport geom.Vector2, o Options) {
	w, h := viewport.X*o.Scale, viewport.Y*o.Scale
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %g %g">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, viewport.X, viewport.Y, o.Background)
}

// SpaceToSVG draws the current bodies of s in world coordinates, optionally
// with the leaf cells of its quadtree and a line from each body to the centre
// of its leaf.
func SpaceToSVG(s *space.Space, o Options) string {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	var sb strings.Builder
	header(&sb, s.Viewport(), o)

	if o.ShowTree || o.ShowLinks {
		fmt.Fprintf(&sb, "<g fill=\"none\" stroke=\"%s\" stroke-width=\"0.5\">\n", o.TreeColor)
		s.Tree().Walk(func(n *quadtree.Node) bool {
			if !n.IsLeaf() {
				return true
			}
			box := n.Boundary()
			if o.ShowTree {
				lo := box.Min()
				fmt.Fprintf(&sb, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\"/>\n",
					lo.X, lo.Y, box.Width(), 2*box.HalfSize.Y)
			}
			if o.ShowLinks {
				for _, b := range n.LeafBodies() {
					fmt.Fprintf(&sb, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\"/>\n",
						b.Position.X, b.Position.Y, box.Center.X, box.Center.Y)
				}
			}
			return true
		})
		sb.WriteString("</g>\n")
	}

	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", o.BodyColor)
	for _, b := range s.Bodies() {
		fmt.Fprintf(&sb, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\"/>\n",
			b.Position.X, b.Position.Y, math.Max(b.Radius, 0.5))
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// TrailsToSVG draws the path of every body across frames. A path is broken
// wherever a body wrapped around the viewport so no line crosses the screen.
func TrailsToSVG(frames []sim.Frame, viewport geom.Vector2, o Options) string {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	var sb strings.Builder
	header(&sb, viewport, o)
	if len(frames) == 0 {
		sb.WriteString("</svg>\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "<g fill=\"none\" stroke=\"%s\" stroke-width=\"0.75\" stroke-opacity=\"0.6\">\n", o.TrailColor)
	for i := range frames[0].Bodies {
		var path strings.Builder
		var prev sim.BodyState
		for j, f := range frames {
			if i >= len(f.Bodies) {
				break
			}
			p := f.Bodies[i]
			jump := j > 0 && (math.Abs(p.X-prev.X) > viewport.X/2 || math.Abs(p.Y-prev.Y) > viewport.Y/2)
			if j == 0 || jump {
				fmt.Fprintf(&path, "M%.2f,%.2f", p.X, p.Y)
			} else {
				fmt.Fprintf(&path, " L%.2f,%.2f", p.X, p.Y)
			}
			prev = p
		}
		fmt.Fprintf(&sb, "<path d=\"%s\"/>\n", path.String())
	}
	sb.WriteString("</g>\n")

	last := frames[len(frames)-1]
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", o.BodyColor)
	for _, b := range last.Bodies {
		fmt.Fprintf(&sb, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"1.5\"/>\n", b.X, b.Y)
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
