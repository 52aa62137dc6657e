package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/vszip/pkg/ports"
)

var (
	cellA = color.RGBA{R: 0x42, G: 0x85, B: 0xf4, A: 0xff}
	cellB = color.RGBA{R: 0xfb, G: 0x8c, B: 0x00, A: 0xff}
)

func isColor(c color.Color, want color.RGBA) bool {
	r, g, b, a := c.RGBA()
	wr, wg, wb, wa := want.RGBA()
	return r == wr && g == wg && b == wb && a == wa
}

func TestRenderer_CreateCanvas(t *testing.T) {
	bg := color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	img := New().CreateCanvas(1136, 104, bg).ToImage()

	if b := img.Bounds(); b.Dx() != 1136 || b.Dy() != 104 {
		t.Fatalf("expected 1136x104, got %dx%d", b.Dx(), b.Dy())
	}
	if !isColor(img.At(0, 0), bg) || !isColor(img.At(1135, 103), bg) {
		t.Error("expected canvas filled with the background")
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(64, 40, color.White)
	canvas.DrawRect(8, 8, 16, 16, cellB)

	data, err := r.EncodePNG(canvas.ToImage())
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 40 {
		t.Errorf("expected 64x40, got %dx%d", b.Dx(), b.Dy())
	}
	if !isColor(decoded.At(12, 12), cellB) {
		t.Errorf("expected cell colour to survive the round trip, got %v", decoded.At(12, 12))
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	luma := image.NewGray(image.Rect(0, 0, 640, 360))

	tests := []struct {
		name          string
		width, height int
	}{
		{"thumbnail", 160, 90},
		{"upscale", 1280, 720},
		{"square", 32, 32},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := r.ResizeImage(luma, tt.width, tt.height).Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("expected %dx%d, got %dx%d", tt.width, tt.height, b.Dx(), b.Dy())
			}
		})
	}
}

func TestCanvas_DrawRect(t *testing.T) {
	canvas := New().CreateCanvas(120, 60, color.White)
	canvas.DrawRect(8, 8, 56, 40, cellA)
	canvas.DrawRect(64, 8, 56, 40, cellB)

	img := canvas.ToImage()
	if !isColor(img.At(30, 30), cellA) {
		t.Errorf("expected clip a cell at (30,30), got %v", img.At(30, 30))
	}
	if !isColor(img.At(90, 30), cellB) {
		t.Errorf("expected clip b cell at (90,30), got %v", img.At(90, 30))
	}
	if !isColor(img.At(2, 2), color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Error("expected padding to keep the background")
	}
}

func TestCanvas_DrawRectStroke(t *testing.T) {
	failed := color.RGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	canvas := New().CreateCanvas(100, 100, color.White)
	canvas.DrawRectStroke(10, 10, 40, 40, failed, 4)

	img := canvas.ToImage()
	if _, g, _, _ := img.At(10, 30).RGBA(); g>>8 > 0x80 {
		t.Errorf("expected stroke on the left edge, got %v", img.At(10, 30))
	}
	if !isColor(img.At(30, 30), color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Error("expected stroke not to fill the interior")
	}
}

func TestCanvas_DrawText(t *testing.T) {
	for _, align := range []ports.TextAlign{ports.AlignLeft, ports.AlignCenter, ports.AlignRight} {
		canvas := New().CreateCanvas(56, 40, cellA)
		canvas.DrawText("12", 28, 20, ports.TextStyle{FontSize: 12, Color: color.White, Align: align})

		img := canvas.ToImage()
		changed := false
		for y := 0; y < 40 && !changed; y++ {
			for x := 0; x < 56; x++ {
				if !isColor(img.At(x, y), cellA) {
					changed = true
					break
				}
			}
		}
		if !changed {
			t.Errorf("align %d: expected label pixels on the cell", align)
		}
	}
}

func TestCanvas_DrawText_MissingFont(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(200, 50, color.White)

	canvas.DrawText("frame 12", 100, 25, ports.TextStyle{
		FontSize: 14,
		FontPath: "/nonexistent/font.ttf",
		Color:    color.Black,
		Align:    ports.AlignCenter,
	})

	if len(r.faces) != 0 {
		t.Error("expected failed font load not to be cached")
	}
}
