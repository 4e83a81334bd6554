// Package plot renders segment sets and planar subdivisions to PNG images.
// It is a thin visualisation collaborator over the algorithm packages, used
// by the command-line tool when plotting is requested.
package plot

import (
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/mcorte/mapoverlay/dcel"
	"github.com/mcorte/mapoverlay/linesegment"
	"github.com/mcorte/mapoverlay/point"
)

const (
	width  = 160.0 // mm
	height = 120.0 // mm
	margin = 10.0  // mm
)

var palette = []color.RGBA{
	canvas.Steelblue,
	canvas.Seagreen,
	canvas.Darkorange,
	canvas.Mediumpurple,
	canvas.Indianred,
	canvas.Goldenrod,
}

// Intersections renders a segment set and the intersection points found in
// it to a PNG file at path.
func Intersections(segments []linesegment.LineSegment, intersections []point.Point, path string) error {
	var xs, ys []float64
	for _, seg := range segments {
		xs = append(xs, seg.P1().X(), seg.P2().X())
		ys = append(ys, seg.P1().Y(), seg.P2().Y())
	}
	project := projection(xs, ys)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(width, height))
	ctx.SetFillColor(canvas.Transparent)

	ctx.SetStrokeColor(canvas.Steelblue)
	ctx.SetStrokeWidth(0.4)
	for _, seg := range segments {
		p := &canvas.Path{}
		x1, y1 := project(seg.P1())
		x2, y2 := project(seg.P2())
		p.MoveTo(x1, y1)
		p.LineTo(x2, y2)
		ctx.DrawPath(0, 0, p)
	}

	ctx.SetFillColor(canvas.Indianred)
	ctx.SetStrokeColor(canvas.Transparent)
	for _, ip := range intersections {
		x, y := project(ip)
		ctx.DrawPath(x, y, canvas.Circle(0.8))
	}

	return renderers.Write(path, c, canvas.DPMM(5.0))
}

// Overlay renders a planar subdivision to a PNG file at path, stroking each
// internal face boundary in its own colour.
func Overlay(d *dcel.DCEL, path string) error {
	faces, err := d.Segments()
	if err != nil {
		return err
	}

	var xs, ys []float64
	for _, boundary := range faces {
		for _, e := range boundary {
			xs = append(xs, e.Origin.X(), e.Destination.X())
			ys = append(ys, e.Origin.Y(), e.Destination.Y())
		}
	}
	project := projection(xs, ys)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(width, height))
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeWidth(0.5)

	for i, boundary := range faces {
		if len(boundary) == 0 {
			continue
		}
		ctx.SetStrokeColor(palette[i%len(palette)])
		p := &canvas.Path{}
		x, y := project(boundary[0].Origin)
		p.MoveTo(x, y)
		for _, e := range boundary {
			x, y = project(e.Destination)
			p.LineTo(x, y)
		}
		p.Close()
		ctx.DrawPath(0, 0, p)
	}

	return renderers.Write(path, c, canvas.DPMM(5.0))
}

// projection maps data coordinates into the drawing area, preserving aspect
// ratio.
func projection(xs, ys []float64) func(point.Point) (float64, float64) {
	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	scale := math.Min((width-2*margin)/spanX, (height-2*margin)/spanY)

	return func(p point.Point) (float64, float64) {
		return margin + (p.X()-minX)*scale, margin + (p.Y()-minY)*scale
	}
}

func bounds(vs []float64) (min, max float64) {
	if len(vs) == 0 {
		return 0, 1
	}
	min, max = vs[0], vs[0]
	for _, v := range vs[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}
