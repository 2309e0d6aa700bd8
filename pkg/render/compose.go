// Package render draws channel views offscreen. Compose builds a
// picture of the whole window as pkg/window shows it on screen.
package render

import (
	"image"
	"image/color"

	"github.com/voc/voctozoom/pkg/channel"
	"github.com/voc/voctozoom/pkg/geometry"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	Background = color.RGBA{A: 0xff}
	Indicator  = color.RGBA{R: 0xff, A: 0xff}
	Preview    = color.RGBA{G: 0xff, A: 0xff}
	Disabled   = color.RGBA{R: 0x40, A: 0xff}
	Label      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Compose draws all views into one window sized picture: the whole
// frame in the full pane, the crop scaled into the zoom pane and both
// overlays on top.
func Compose(views []channel.View, size geometry.Size) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	for _, v := range views {
		full, zoom := rect(v.Full.Rect()), rect(v.Zoom.Rect())
		if !v.Active {
			draw.Draw(dst, full.Union(zoom), image.NewUniform(Disabled), image.Point{}, draw.Src)
		} else if len(v.Pixels) == v.Frame.Bytes() {
			src := FromRGB24(v.Pixels, v.Frame)
			draw.NearestNeighbor.Scale(dst, full, src, src.Bounds(), draw.Src, nil)
			draw.NearestNeighbor.Scale(dst, zoom, src, rect(v.Crop), draw.Src, nil)
		}
		Stroke(dst, v.Indicator, Indicator)
		if v.HasPreview {
			Stroke(dst, v.Preview, Preview)
		}
		text(dst, v.Name, image.Pt(full.Min.X+4, full.Min.Y+14))
	}
	return dst
}

// FromRGB24 converts a raw row-major RGB frame.
func FromRGB24(pixels []byte, frame geometry.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.W, frame.H))
	for i, j := 0, 0; i+2 < len(pixels) && j+3 < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j] = pixels[i]
		img.Pix[j+1] = pixels[i+1]
		img.Pix[j+2] = pixels[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// Stroke draws a one pixel rectangle outline.
func Stroke(dst *image.RGBA, r geometry.Rect, c color.RGBA) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W-1, r.Y+r.H-1
	for x := x0; x <= x1; x++ {
		dst.SetRGBA(x, y0, c)
		dst.SetRGBA(x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		dst.SetRGBA(x0, y, c)
		dst.SetRGBA(x1, y, c)
	}
}

func text(dst *image.RGBA, s string, at image.Point) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(Label),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(at.X, at.Y),
	}
	d.DrawString(s)
}

func rect(r geometry.Rect) image.Rectangle { return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H) }
