package ports

import (
	"image"
	"image/color"
)

// Renderer draws the timeline sheet and prepares debug thumbnails.
type Renderer interface {
	// CreateCanvas creates a canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodePNG encodes img as PNG.
	EncodePNG(img image.Image) ([]byte, error)

	// ResizeImage scales img to width x height.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas is a drawing surface. A Canvas is used by one goroutine.
type Canvas interface {
	DrawRect(x, y, w, h int, c color.Color)
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// DrawText draws text vertically centred on y and aligned on x.
	DrawText(text string, x, y int, style TextStyle)

	ToImage() image.Image
}

// TextStyle defines text rendering properties. An empty FontPath uses the
// renderer's built-in face.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies horizontal text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)
