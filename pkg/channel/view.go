package channel

import "github.com/voc/voctozoom/pkg/geometry"

// View is what a renderer needs to draw one channel.
type View struct {
	Name  string
	Frame geometry.Frame
	// Pixels is the raw RGB24 frame, owned by the channel.
	Pixels []byte
	Crop   geometry.Rect
	Full   geometry.Pane
	Zoom   geometry.Pane
	// Indicator marks the crop inside the full pane.
	Indicator  geometry.Rect
	Preview    geometry.Rect
	HasPreview bool
	Active     bool
}

func (c *Channel) View() View {
	return View{
		Name:       c.Name,
		Frame:      c.frame,
		Pixels:     c.buf,
		Crop:       c.crop,
		Full:       c.Full,
		Zoom:       c.Zoom,
		Indicator:  geometry.FrameToPane(c.Full, c.frame, c.crop),
		Preview:    c.preview,
		HasPreview: c.hasPreview,
		Active:     c.Active(),
	}
}
