// Package gauge draws the circular countdown.
package gauge

import (
	"image/color"
	"math"

	"deepwork/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const ringThickness = 0.14

type pixelKind int

const (
	pixelOutside pixelKind = iota
	pixelTrack
	pixelFilled
)

// Gauge is a ring that empties clockwise from twelve o'clock, with the time in the middle.
type Gauge struct {
	widget.BaseWidget

	progress   float64
	text       string
	ringColor  color.Color
	trackColor color.Color
	textColor  color.Color
	minSide    float32
}

// New creates an empty gauge showing 00:00.
func New(minSide float32) *Gauge {
	gauge := &Gauge{
		text:       model.FormatClock(0),
		ringColor:  color.NRGBA{R: 0x55, G: 0x60, B: 0x27, A: 255},
		trackColor: color.NRGBA{R: 255, G: 255, B: 255, A: 40},
		textColor:  color.White,
		minSide:    minSide,
	}
	gauge.ExtendBaseWidget(gauge)
	return gauge
}

// SetValue updates the time text and filled fraction. Call on the UI thread.
func (gauge *Gauge) SetValue(remaining int, progress float64) {
	gauge.progress = clampProgress(progress)
	gauge.text = model.FormatClock(remaining)
	gauge.Refresh()
}

// SetColors updates the ring, track and text colors. Call on the UI thread.
func (gauge *Gauge) SetColors(ring, track, text color.Color) {
	gauge.ringColor = ring
	gauge.trackColor = track
	gauge.textColor = text
	gauge.Refresh()
}

// Text returns the displayed MM:SS value.
func (gauge *Gauge) Text() string {
	return gauge.text
}

// CreateRenderer implements fyne.Widget.
func (gauge *Gauge) CreateRenderer() fyne.WidgetRenderer {
	label := canvas.NewText(gauge.text, gauge.textColor)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	renderer := &gaugeRenderer{gauge: gauge, label: label}
	renderer.ring = canvas.NewRasterWithPixels(renderer.pixel)
	return renderer
}

type gaugeRenderer struct {
	gauge *Gauge
	ring  *canvas.Raster
	label *canvas.Text
}

func (renderer *gaugeRenderer) pixel(x, y, width, height int) color.Color {
	switch ringPixel(x, y, width, height, renderer.gauge.progress) {
	case pixelFilled:
		return renderer.gauge.ringColor
	case pixelTrack:
		return renderer.gauge.trackColor
	default:
		return color.Transparent
	}
}

func (renderer *gaugeRenderer) Layout(size fyne.Size) {
	renderer.ring.Resize(size)
	renderer.ring.Move(fyne.NewPos(0, 0))

	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	renderer.label.TextSize = side / 5
	labelSize := renderer.label.MinSize()
	renderer.label.Resize(labelSize)
	renderer.label.Move(fyne.NewPos((size.Width-labelSize.Width)/2, (size.Height-labelSize.Height)/2))
}

func (renderer *gaugeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(renderer.gauge.minSide, renderer.gauge.minSide)
}

func (renderer *gaugeRenderer) Refresh() {
	renderer.label.Text = renderer.gauge.text
	renderer.label.Color = renderer.gauge.textColor
	renderer.Layout(renderer.gauge.Size())
	renderer.ring.Refresh()
	renderer.label.Refresh()
}

func (renderer *gaugeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{renderer.ring, renderer.label}
}

func (renderer *gaugeRenderer) Destroy() {}

// ringPixel classifies a raster pixel: outside the ring, on its empty track, or filled.
func ringPixel(x, y, width, height int, progress float64) pixelKind {
	if width <= 0 || height <= 0 {
		return pixelOutside
	}

	centerX := float64(width) / 2
	centerY := float64(height) / 2
	outer := math.Min(centerX, centerY)
	inner := outer * (1 - ringThickness)

	dx := float64(x) + 0.5 - centerX
	dy := float64(y) + 0.5 - centerY
	distance := math.Hypot(dx, dy)
	if distance > outer || distance < inner {
		return pixelOutside
	}

	// Clockwise angle from twelve o'clock, in [0, 2π).
	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if angle/(2*math.Pi) < progress {
		return pixelFilled
	}
	return pixelTrack
}

func clampProgress(progress float64) float64 {
	if progress < 0 || math.IsNaN(progress) {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
