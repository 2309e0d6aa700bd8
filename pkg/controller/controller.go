// Package controller runs the single threaded main loop: frame refresh
// on a fixed interval, input events in between and one redraw per
// loop iteration at most.
//
// Every network call blocks the loop, a slow source freezes the whole
// interface until it answers. There is no request timeout.
package controller

import (
	"errors"
	"time"

	"github.com/voc/voctozoom/pkg/channel"
	"github.com/voc/voctozoom/pkg/interaction"
	"github.com/voc/voctozoom/pkg/logger"
	"github.com/voc/voctozoom/pkg/remote"
)

var ErrNoChannels = errors.New("no channels left")

// Events is a queue of input events.
type Events interface {
	// Next waits up to timeout for an event.
	Next(timeout time.Duration) (interaction.Event, bool)
}

type Renderer interface {
	Render(views []channel.View) error
}

type Screenshots interface {
	Save(views []channel.View) (string, error)
}

type Controller struct {
	Channels []*channel.Channel
	Machine  *interaction.Machine
	Events   Events
	Renderer Renderer
	// Screenshots is optional.
	Screenshots Screenshots
	Refresh     time.Duration
	// FailFast stops the loop on the first channel failure.
	FailFast bool
	// Done stops the loop when closed.
	Done <-chan struct{}
	Log  *logger.Logger

	now func() time.Time
}

// Run loops until quit, termination or a fatal error.
func (c *Controller) Run() error {
	if c.now == nil {
		c.now = time.Now
	}
	var last time.Time
	redraw := true
	for {
		select {
		case <-c.Done:
			return nil
		default:
		}

		wait := c.Refresh - c.now().Sub(last)
		if wait < 0 {
			wait = 0
		}
		// the first event may wait, the rest of the queue is drained so
		// one render covers all of it
		for ev, ok := c.Events.Next(wait); ok; ev, ok = c.Events.Next(0) {
			if key, ok := ev.(interaction.Key); ok && key.Action == interaction.Quit {
				return nil
			}
			r, err := c.handle(ev)
			if err != nil {
				return err
			}
			redraw = redraw || r
		}

		if c.now().Sub(last) >= c.Refresh {
			last = c.now()
			for _, ch := range c.Channels {
				if err := c.check(ch.Refresh()); err != nil {
					return err
				}
			}
			redraw = true
		}

		if !c.anyActive() {
			return ErrNoChannels
		}
		if redraw {
			if err := c.Renderer.Render(c.views()); err != nil {
				return err
			}
			redraw = false
		}
	}
}

func (c *Controller) handle(ev interaction.Event) (bool, error) {
	if key, ok := ev.(interaction.Key); ok && key.Action == interaction.Screenshot {
		if c.Screenshots != nil {
			if name, err := c.Screenshots.Save(c.views()); err != nil {
				c.Log.Error().Err(err).Msg("Screenshot failed")
			} else {
				c.Log.Info().Msgf("Screenshot saved to %v", name)
			}
		}
		return false, nil
	}
	redraw, err := c.Machine.Dispatch(ev)
	return redraw, c.check(err)
}

// check decides if a channel error ends the loop. Channels disable
// themselves on connection loss, framing errors are skipped.
func (c *Controller) check(err error) error {
	if err == nil || errors.Is(err, remote.ErrFraming) {
		return nil
	}
	if c.FailFast {
		return err
	}
	return nil
}

func (c *Controller) anyActive() bool {
	for _, ch := range c.Channels {
		if ch.Active() {
			return true
		}
	}
	return false
}

func (c *Controller) views() []channel.View {
	views := make([]channel.View, 0, len(c.Channels))
	for _, ch := range c.Channels {
		views = append(views, ch.View())
	}
	return views
}
