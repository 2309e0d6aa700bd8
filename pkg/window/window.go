// Package window shows channels in an SDL window and reads its input.
// All SDL calls go through the main thread.
package window

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/voc/voctozoom/pkg/channel"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/interaction"
	"github.com/voc/voctozoom/pkg/render"
	"github.com/voc/voctozoom/pkg/thread"
)

type Window struct {
	w     *sdl.Window
	r     *sdl.Renderer
	tex   []*sdl.Texture
	frame geometry.Frame
}

type Config struct {
	Title    string
	Size     geometry.Size
	Frame    geometry.Frame
	Channels int
}

func Open(cfg Config) (win *Window, err error) {
	thread.MainMaybe(func() { win, err = open(cfg) })
	return
}

func open(cfg Config) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	w, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Size.W), int32(cfg.Size.H), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("window: %w", err)
	}
	r, err := sdl.CreateRenderer(w, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		err1 := w.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("renderer: %w, destroy err: %v", err, err1)
	}
	win := &Window{w: w, r: r, frame: cfg.Frame}
	for i := 0; i < cfg.Channels; i++ {
		tex, err := r.CreateTexture(uint32(sdl.PIXELFORMAT_RGB24), int(sdl.TEXTUREACCESS_STREAMING),
			int32(cfg.Frame.W), int32(cfg.Frame.H))
		if err != nil {
			win.close()
			return nil, fmt.Errorf("texture: %w", err)
		}
		win.tex = append(win.tex, tex)
	}
	return win, nil
}

// Render uploads the frames and draws the panes with the crop
// indicator and the selection preview.
func (w *Window) Render(views []channel.View) (err error) {
	thread.MainMaybe(func() { err = w.render(views) })
	return
}

func (w *Window) render(views []channel.View) error {
	setColor(w.r, render.Background)
	if err := w.r.Clear(); err != nil {
		return err
	}
	for i, v := range views {
		if i >= len(w.tex) {
			break
		}
		full, zoom := rect(v.Full.Rect()), rect(v.Zoom.Rect())
		if !v.Active {
			setColor(w.r, render.Disabled)
			_ = w.r.FillRect(full)
			_ = w.r.FillRect(zoom)
			continue
		}
		if err := w.upload(w.tex[i], v.Pixels); err != nil {
			return err
		}
		if err := w.r.Copy(w.tex[i], nil, full); err != nil {
			return err
		}
		if err := w.r.Copy(w.tex[i], rect(v.Crop), zoom); err != nil {
			return err
		}
		setColor(w.r, render.Indicator)
		_ = w.r.DrawRect(rect(v.Indicator))
		if v.HasPreview {
			setColor(w.r, render.Preview)
			_ = w.r.DrawRect(rect(v.Preview))
		}
	}
	w.r.Present()
	return nil
}

func (w *Window) upload(tex *sdl.Texture, pixels []byte) error {
	row := w.frame.W * 3
	if len(pixels) < row*w.frame.H {
		return nil
	}
	dst, pitch, err := tex.Lock(nil)
	if err != nil {
		return err
	}
	for y := 0; y < w.frame.H; y++ {
		copy(dst[y*pitch:y*pitch+row], pixels[y*row:(y+1)*row])
	}
	tex.Unlock()
	return nil
}

// Next waits for the next input event the controller cares about. A
// zero timeout only looks at what is already queued.
func (w *Window) Next(timeout time.Duration) (ev interaction.Event, ok bool) {
	thread.MainMaybe(func() {
		for e := wait(timeout); e != nil; e = sdl.PollEvent() {
			if ev, ok = translate(e); ok {
				return
			}
		}
	})
	return
}

func wait(timeout time.Duration) sdl.Event {
	if timeout <= 0 {
		return sdl.PollEvent()
	}
	return sdl.WaitEventTimeout(int(timeout / time.Millisecond))
}

func (w *Window) Close() {
	thread.MainMaybe(w.close)
}

func (w *Window) close() {
	for _, t := range w.tex {
		_ = t.Destroy()
	}
	_ = w.r.Destroy()
	_ = w.w.Destroy()
	sdl.Quit()
}

func setColor(r *sdl.Renderer, c interface{ RGBA() (r, g, b, a uint32) }) {
	cr, cg, cb, ca := c.RGBA()
	_ = r.SetDrawColor(uint8(cr>>8), uint8(cg>>8), uint8(cb>>8), uint8(ca>>8))
}

func rect(r geometry.Rect) *sdl.Rect {
	return &sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)}
}
