package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/element-digitizer/element-digitizer/internal/model"
)

var (
	scrimColor   = color.RGBA{R: 128, G: 128, B: 128, A: 51} // 20% gray
	borderColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	fillColor    = color.RGBA{R: 255, G: 0, B: 0, A: 25} // 10% red
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// renderScrim copies the backdrop into an RGBA image and dims it with a
// translucent gray layer.
func renderScrim(backdrop image.Image) *image.RGBA {
	bounds := backdrop.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, backdrop, bounds.Min, draw.Src)
	draw.Draw(rgba, bounds, image.NewUniform(scrimColor), image.Point{}, draw.Over)
	return rgba
}

// drawSelection draws the selection rectangle: tinted interior, solid
// border, and a size label at the rectangle center.
func drawSelection(img *image.RGBA, r model.Rect) {
	sel := image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
	draw.Draw(img, sel.Intersect(img.Bounds()), image.NewUniform(fillColor), image.Point{}, draw.Over)
	drawRectangle(img, r.Left, r.Top, r.Left+r.Width, r.Top+r.Height, borderColor)

	label := fmt.Sprintf("%dx%d", r.Width, r.Height)
	drawTextWithOutline(img, label, r.Left+r.Width/2, r.Top+r.Height/2)
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline, clamped to the image bounds.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		if isWithinBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if isWithinBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}
	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline draws text centered at (x, y) with a dark outline so
// it stays readable over any backdrop.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	// basicfont.Face7x13: ~7px per character, 13px tall
	textWidth := len(text) * 7
	textHeight := 13

	offsetX := x - textWidth/2
	offsetY := y - textHeight/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, offsetY+dy, outlineColor)
		}
	}
	drawString(img, text, offsetX, offsetY, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(text)
}
