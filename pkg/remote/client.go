// Package remote implements the crop synchronization protocol with a
// video source: a line based, strictly synchronous exchange where every
// command gets exactly one answer.
//
//	get_resolution\n       -> "1280x720\n"
//	get_image\n            -> width*height*3 raw RGB bytes
//	zoom_to WxH+X+Y\n      -> "OK\n" or anything else for a rejection
package remote

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/logger"
)

var (
	ErrResolutionMismatch = errors.New("resolution mismatch")
	ErrDisconnected       = errors.New("channel disconnected")
	ErrFraming            = errors.New("bad framing")
	ErrProtocol           = errors.New("bad response")
)

const (
	cmdResolution = "get_resolution\n"
	cmdImage      = "get_image\n"
	respOK        = "OK\n"
)

// Client runs commands on one connection. It is not safe for
// concurrent use, at most one request is outstanding at a time.
type Client struct {
	name string
	id   uuid.UUID
	conn Conn
	log  *logger.Logger
}

func NewClient(name string, conn Conn, log *logger.Logger) *Client {
	id, _ := uuid.NewV4()
	return &Client{
		name: name,
		id:   id,
		conn: conn,
		log:  log.Extend(log.With().Str("s", name).Str("sid", id.String()[:8])),
	}
}

// Connect dials the address and checks that the source delivers frames
// of the expected size. Any error here is fatal for the channel.
func Connect(name, address string, timeout time.Duration, frame geometry.Frame, log *logger.Logger) (*Client, error) {
	conn, err := Dial(address, timeout)
	if err != nil {
		return nil, fmt.Errorf("%v: connect %v: %w", name, address, err)
	}
	c := NewClient(name, conn, log)
	if err = c.Handshake(frame); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	c.log.Info().Msgf("Connected to %v", address)
	connected.WithLabelValues(name).Set(1)
	return c, nil
}

func (c *Client) Name() string { return c.name }

func (c *Client) ID() uuid.UUID { return c.id }

// Resolution asks the source for its frame size.
func (c *Client) Resolution() (geometry.Frame, error) {
	line, err := c.call(cmdResolution)
	if err != nil {
		return geometry.Frame{}, err
	}
	w, h, ok := strings.Cut(strings.TrimSuffix(line, "\n"), "x")
	if !ok {
		return geometry.Frame{}, fmt.Errorf("%w: resolution %q", ErrProtocol, line)
	}
	fw, err1 := strconv.Atoi(w)
	fh, err2 := strconv.Atoi(h)
	if err1 != nil || err2 != nil {
		return geometry.Frame{}, fmt.Errorf("%w: resolution %q", ErrProtocol, line)
	}
	return geometry.Frame{W: fw, H: fh}, nil
}

// Handshake fails with ErrResolutionMismatch unless the source reports
// exactly the expected frame size.
func (c *Client) Handshake(expected geometry.Frame) error {
	got, err := c.Resolution()
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("%w: source has %v, expected %v", ErrResolutionMismatch, got, expected)
	}
	return nil
}

// Image fetches one whole frame into dst, which must be
// width*height*3 bytes long.
func (c *Client) Image(dst []byte) error {
	start := time.Now()
	if err := c.conn.WriteLine(cmdImage); err != nil {
		return c.fail("get_image", err)
	}
	if err := c.conn.ReadBlob(dst); err != nil {
		return c.fail("get_image", err)
	}
	frameFetch.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	return nil
}

// ZoomTo proposes a crop. It returns true only if the source answered
// with OK, a rejection is not an error.
func (c *Client) ZoomTo(r geometry.Rect) (bool, error) {
	line, err := c.call(fmt.Sprintf("zoom_to %v\n", r))
	if err != nil {
		cropRequests.WithLabelValues(c.name, "error").Inc()
		return false, err
	}
	if line != respOK {
		cropRequests.WithLabelValues(c.name, "rejected").Inc()
		c.log.Warn().Str("crop", r.String()).Msgf("Crop rejected: %q", line)
		return false, nil
	}
	cropRequests.WithLabelValues(c.name, "ok").Inc()
	c.log.Debug().Str("crop", r.String()).Msg("Crop confirmed")
	return true, nil
}

func (c *Client) Close() error {
	connected.WithLabelValues(c.name).Set(0)
	return c.conn.Close()
}

func (c *Client) call(cmd string) (string, error) {
	op := strings.Fields(cmd)[0]
	if err := c.conn.WriteLine(cmd); err != nil {
		return "", c.fail(op, err)
	}
	line, err := c.conn.ReadLine()
	if err != nil {
		return "", c.fail(op, err)
	}
	return line, nil
}

func (c *Client) fail(op string, err error) error {
	if errors.Is(err, ErrFraming) {
		return fmt.Errorf("%v: %w", op, err)
	}
	connected.WithLabelValues(c.name).Set(0)
	return fmt.Errorf("%v: %w: %w", op, ErrDisconnected, err)
}
