package gauge

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
)

func TestRingPixel(t *testing.T) {
	const side = 100

	if kind := ringPixel(50, 50, side, side, 1); kind != pixelOutside {
		t.Fatalf("center must be outside the ring, got %v", kind)
	}
	if kind := ringPixel(0, 0, side, side, 1); kind != pixelOutside {
		t.Fatalf("corner must be outside the ring, got %v", kind)
	}

	// Right-hand side of the ring sits a quarter turn clockwise from the top.
	if kind := ringPixel(97, 50, side, side, 0.3); kind != pixelFilled {
		t.Fatalf("quarter turn should be filled at 30%%, got %v", kind)
	}
	if kind := ringPixel(97, 50, side, side, 0.2); kind != pixelTrack {
		t.Fatalf("quarter turn should be empty at 20%%, got %v", kind)
	}
	// Left-hand side is three quarters around.
	if kind := ringPixel(2, 50, side, side, 0.5); kind != pixelTrack {
		t.Fatalf("three quarters should be empty at 50%%, got %v", kind)
	}
	if kind := ringPixel(2, 50, side, side, 1); kind != pixelFilled {
		t.Fatalf("full ring should be filled everywhere, got %v", kind)
	}
	if kind := ringPixel(50, 2, side, side, 0); kind != pixelTrack {
		t.Fatalf("empty gauge shows only the track, got %v", kind)
	}
}

func TestGaugeSetValue(t *testing.T) {
	test.NewTempApp(t)

	gauge := New(120)
	gauge.SetValue(65, 1.7)
	if gauge.Text() != "01:05" || gauge.progress != 1 {
		t.Fatalf("unexpected gauge state %q / %v", gauge.Text(), gauge.progress)
	}

	gauge.SetColors(color.Black, color.White, color.Black)
	renderer := test.WidgetRenderer(gauge)
	if renderer.MinSize().Width != 120 {
		t.Fatalf("unexpected min size %v", renderer.MinSize())
	}
	label, ok := renderer.Objects()[1].(*canvas.Text)
	if !ok || label.Text != "01:05" || label.Color != color.Black {
		t.Fatalf("unexpected label %+v", renderer.Objects()[1])
	}
}
