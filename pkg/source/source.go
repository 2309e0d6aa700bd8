// Package source is a stand-in video source speaking the zoom control
// protocol over TCP and websocket. It serves a synthetic moving test
// pattern and accepts any crop that fits the frame.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/logger"
)

type Source struct {
	frame geometry.Frame
	log   *logger.Logger

	mu   sync.Mutex
	crop geometry.Rect
	tick int
}

func New(frame geometry.Frame, log *logger.Logger) *Source {
	return &Source{frame: frame, log: log, crop: frame.Full()}
}

// Crop returns the last accepted crop.
func (s *Source) Crop() geometry.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crop
}

type replier interface {
	line(s string) error
	blob(b []byte) error
}

// exec runs one command line and writes exactly one reply.
func (s *Source) exec(cmd string, r replier) error {
	cmd = strings.TrimRight(cmd, "\r\n")
	name, arg, _ := strings.Cut(cmd, " ")
	switch name {
	case "get_resolution":
		return r.line(s.frame.String() + "\n")
	case "get_image":
		return r.blob(s.image())
	case "zoom_to":
		var c geometry.Rect
		if _, err := fmt.Sscanf(arg, "%dx%d+%d+%d", &c.W, &c.H, &c.X, &c.Y); err != nil || !s.frame.Valid(c) {
			s.log.Warn().Msgf("Rejected crop %q", arg)
			return r.line("ERR\n")
		}
		s.mu.Lock()
		s.crop = c
		s.mu.Unlock()
		s.log.Info().Msgf("Crop %v", c)
		return r.line("OK\n")
	}
	s.log.Warn().Msgf("Unknown command %q", cmd)
	return r.line("ERR\n")
}

// image draws a gradient with a bar moving one step per request.
func (s *Source) image() []byte {
	s.mu.Lock()
	s.tick++
	bar := (s.tick * 8) % s.frame.W
	s.mu.Unlock()

	buf := make([]byte, s.frame.Bytes())
	for y := 0; y < s.frame.H; y++ {
		for x := 0; x < s.frame.W; x++ {
			i := (y*s.frame.W + x) * 3
			buf[i] = byte(x * 255 / s.frame.W)
			buf[i+1] = byte(y * 255 / s.frame.H)
			buf[i+2] = 0x80
			if x >= bar && x < bar+8 {
				buf[i], buf[i+1], buf[i+2] = 0xff, 0xff, 0xff
			}
		}
	}
	return buf
}

// Serve accepts TCP connections until the listener is closed.
func (s *Source) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.serveStream(conn)
	}
}

type streamReplier struct{ w io.Writer }

func (r streamReplier) line(s string) error { _, err := io.WriteString(r.w, s); return err }
func (r streamReplier) blob(b []byte) error { _, err := r.w.Write(b); return err }

func (s *Source) serveStream(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	s.log.Info().Msgf("Client %v connected", conn.RemoteAddr())
	br := bufio.NewReader(conn)
	for {
		cmd, err := br.ReadString('\n')
		if err != nil {
			s.log.Info().Msgf("Client %v left", conn.RemoteAddr())
			return
		}
		if err = s.exec(cmd, streamReplier{w: conn}); err != nil {
			return
		}
	}
}

var upgrader = websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 64 * 1024}

type socketReplier struct{ conn *websocket.Conn }

func (r socketReplier) line(s string) error { return r.conn.WriteMessage(websocket.TextMessage, []byte(s)) }
func (r socketReplier) blob(b []byte) error { return r.conn.WriteMessage(websocket.BinaryMessage, b) }

// ServeHTTP serves the protocol over a websocket, one message per line
// or frame.
func (s *Source) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()
	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		if err = s.exec(string(msg), socketReplier{conn: conn}); err != nil {
			return
		}
	}
}
