// Package channel holds the state of one video source: the crop the
// source confirmed, the one step undo, the local selection preview and
// the latest frame.
package channel

import (
	"errors"
	"fmt"

	"github.com/voc/voctozoom/pkg/crop"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/logger"
	"github.com/voc/voctozoom/pkg/remote"
)

// Source is the request/response side of a video source.
type Source interface {
	Image(dst []byte) error
	ZoomTo(r geometry.Rect) (bool, error)
}

type PaneKind int

const (
	NoPane PaneKind = iota
	FullPane
	ZoomPane
)

type Channel struct {
	Name string
	Full geometry.Pane
	Zoom geometry.Pane

	frame geometry.Frame
	src   Source
	log   *logger.Logger

	// crop is only ever set from a confirmed zoom_to
	crop geometry.Rect
	undo crop.Slot
	// preview is in display coordinates and never leaves this process
	preview    geometry.Rect
	hasPreview bool

	buf []byte
	err error
}

func New(name string, frame geometry.Frame, panes Panes, src Source, log *logger.Logger) *Channel {
	return &Channel{
		Name:  name,
		Full:  panes.Full,
		Zoom:  panes.Zoom,
		frame: frame,
		src:   src,
		log:   log.Tag(name),
		crop:  frame.Full(),
		buf:   make([]byte, frame.Bytes()),
	}
}

func (c *Channel) Frame() geometry.Frame { return c.frame }

func (c *Channel) Crop() geometry.Rect { return c.crop }

// Active is false once the connection failed.
func (c *Channel) Active() bool { return c.err == nil }

func (c *Channel) Err() error { return c.err }

// Propose asks the source to switch to the candidate crop and applies it
// only after the source confirmed it. A candidate equal to the current
// crop is dropped without a request. It returns whether the crop changed.
func (c *Channel) Propose(candidate geometry.Rect) (bool, error) {
	if !c.Active() || candidate == c.crop {
		return false, nil
	}
	if !c.frame.Valid(candidate) {
		c.log.Error().Str("crop", candidate.String()).Msg("Skipped out of bounds crop")
		return false, nil
	}
	ok, err := c.zoomTo(candidate)
	if !ok {
		return false, err
	}
	c.undo.Store(c.crop)
	c.crop = candidate
	return true, nil
}

// Undo goes back to the crop before the last change. The undo slot is
// consumed only when the source confirmed the restored crop.
func (c *Channel) Undo() (bool, error) {
	prev, ok := c.undo.Undo()
	if !ok || !c.Active() {
		return false, nil
	}
	if prev == c.crop {
		c.undo.Clear()
		return false, nil
	}
	if ok, err := c.zoomTo(prev); !ok {
		return false, err
	}
	c.crop = prev
	c.undo.Clear()
	return true, nil
}

// CanUndo reports whether the undo slot holds a crop.
func (c *Channel) CanUndo() bool {
	_, ok := c.undo.Undo()
	return ok
}

// Refresh fetches a new frame. The whole frame is fetched whatever the
// crop is.
func (c *Channel) Refresh() error {
	if !c.Active() {
		return nil
	}
	return c.check(c.src.Image(c.buf))
}

func (c *Channel) zoomTo(r geometry.Rect) (bool, error) {
	ok, err := c.src.ZoomTo(r)
	if err = c.check(err); err != nil {
		return false, err
	}
	return ok, nil
}

// check disables the channel on connection failures. Framing errors
// only lose the current payload.
func (c *Channel) check(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, remote.ErrFraming):
		c.log.Warn().Err(err).Msg("Dropped malformed response")
	default:
		c.err = err
		c.log.Error().Err(err).Msg("Channel is disabled")
	}
	return fmt.Errorf("%v: %w", c.Name, err)
}

func (c *Channel) SetPreview(r geometry.Rect) { c.preview, c.hasPreview = r, true }

func (c *Channel) Preview() (geometry.Rect, bool) { return c.preview, c.hasPreview }

func (c *Channel) ClearPreview() { c.preview, c.hasPreview = geometry.Rect{}, false }

// PaneAt returns the pane that contains pt.
func (c *Channel) PaneAt(pt geometry.Point) PaneKind {
	switch {
	case c.Full.Contains(pt):
		return FullPane
	case c.Zoom.Contains(pt):
		return ZoomPane
	}
	return NoPane
}

// PaneOf returns the pane geometry and the frame window it shows.
func (c *Channel) PaneOf(kind PaneKind) (geometry.Pane, geometry.Rect) {
	if kind == ZoomPane {
		return c.Zoom, c.crop
	}
	return c.Full, c.frame.Full()
}
