// Package chart plots run samples as a time-versus-size line chart.
//
// Coordinates are computed in pixel space (origin top-left, y down) with a
// fixed margin and drawn through a gonum vg.Canvas, whose origin is
// bottom-left; Render flips the y axis when issuing draw calls.
package chart

import (
	"cmp"
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/complexity-runner/internal/model"
)

// Margin is the space reserved on every side for axes and labels.
const Margin = 50

const (
	markerRadius = 2
	labelSize    = 10
)

var (
	// ErrTooFewSamples is returned when fewer than two samples are given.
	ErrTooFewSamples = errors.New("not enough data points to draw chart")

	// ErrCanvasTooSmall is returned when the canvas cannot hold the margins.
	ErrCanvasTooSmall = errors.New("canvas too small for chart margins")
)

var (
	background = color.White
	axisColor  = color.Black
	lineColor  = color.RGBA{B: 255, A: 255}
)

// Point is a pixel coordinate, origin top-left.
type Point struct {
	X, Y int
}

// Project maps samples onto a w x h pixel canvas. Samples must be ordered by
// size; the last size spans the full plot width and the largest duration the
// full height.
func Project(samples []model.Sample, w, h int) []Point {
	if len(samples) == 0 {
		return nil
	}
	maxDuration := slices.MaxFunc(samples, func(a, b model.Sample) int {
		return cmp.Compare(a.Duration, b.Duration)
	}).DurationNanos()
	if maxDuration == 0 {
		maxDuration = 1
	}
	maxSize := int64(samples[len(samples)-1].Size)
	if maxSize == 0 {
		maxSize = 1
	}

	plotW := int64(w - 2*Margin)
	plotH := int64(h - 2*Margin)

	pts := make([]Point, len(samples))
	for i, s := range samples {
		pts[i] = Point{
			X: Margin + int(int64(s.Size)*plotW/maxSize),
			Y: h - Margin - int(s.DurationNanos()*plotH/maxDuration),
		}
	}
	return pts
}

// Render draws the chart for samples onto c, which must be w x h points.
// Canvas panics are returned as errors.
func Render(c vg.Canvas, samples []model.Sample, label string, w, h int) (err error) {
	if len(samples) < 2 {
		return ErrTooFewSamples
	}
	if w <= 2*Margin || h <= 2*Margin {
		return fmt.Errorf("%w: %dx%d", ErrCanvasTooSmall, w, h)
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render chart: %v", rec)
		}
	}()

	d := drawer{c: c, h: h}
	face := font.DefaultCache.Lookup(plot.DefaultFont, labelSize)

	d.c.SetColor(background)
	d.fillRect(0, 0, w, h)

	d.c.SetColor(axisColor)
	d.c.SetLineWidth(1)
	d.line(Margin, h-Margin, w-Margin, h-Margin)
	d.line(Margin, h-Margin, Margin, Margin)

	d.text(face, w/2-30, h-10, "Input Size (n)")
	d.text(face, 10, h/2, "Time (ns)")
	d.text(face, w/2-80, 20, "Time Complexity: "+label)

	d.c.SetColor(lineColor)
	pts := Project(samples, w, h)
	for i, p := range pts {
		d.marker(p)
		if i > 0 {
			d.line(pts[i-1].X, pts[i-1].Y, p.X, p.Y)
		}
	}
	return nil
}

// drawer converts pixel coordinates to canvas coordinates.
type drawer struct {
	c vg.Canvas
	h int
}

func (d drawer) pt(x, y int) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(d.h - y)}
}

func (d drawer) line(x1, y1, x2, y2 int) {
	var p vg.Path
	p.Move(d.pt(x1, y1))
	p.Line(d.pt(x2, y2))
	d.c.Stroke(p)
}

func (d drawer) fillRect(x, y, w, h int) {
	var p vg.Path
	p.Move(d.pt(x, y))
	p.Line(d.pt(x+w, y))
	p.Line(d.pt(x+w, y+h))
	p.Line(d.pt(x, y+h))
	p.Close()
	d.c.Fill(p)
}

func (d drawer) marker(at Point) {
	var p vg.Path
	p.Move(d.pt(at.X+markerRadius, at.Y))
	p.Arc(d.pt(at.X, at.Y), markerRadius, 0, 2*math.Pi)
	p.Close()
	d.c.Fill(p)
}

// text places s with its baseline at pixel row y.
func (d drawer) text(face font.Face, x, y int, s string) {
	d.c.FillString(face, d.pt(x, y), s)
}
