package remote

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is one persistent, strictly request/response connection to a
// video source. Calls block until the peer answers, there are no read
// deadlines.
type Conn interface {
	WriteLine(line string) error
	// ReadLine returns the next response line including its '\n'.
	ReadLine() (string, error)
	// ReadBlob fills dst with exactly len(dst) bytes of payload.
	ReadBlob(dst []byte) error
	Close() error
}

// Dial connects to a source address. Supported forms are host:port,
// tcp://host:port and ws(s)://host/path.
func Dial(address string, timeout time.Duration) (Conn, error) {
	if !strings.Contains(address, "://") {
		address = "tcp://" + address
	}
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("bad address %v: %w", address, err)
	}
	switch u.Scheme {
	case "tcp", "tcp4", "tcp6":
		conn, err := net.DialTimeout(u.Scheme, u.Host, timeout)
		if err != nil {
			return nil, err
		}
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
		}
		return NewStreamConn(conn), nil
	case "ws", "wss":
		dialer := websocket.Dialer{HandshakeTimeout: timeout, Proxy: websocket.DefaultDialer.Proxy}
		conn, _, err := dialer.Dial(u.String(), nil)
		if err != nil {
			return nil, err
		}
		return NewSocketConn(conn), nil
	}
	return nil, fmt.Errorf("unsupported address scheme %q", u.Scheme)
}

type streamConn struct {
	rw io.ReadWriteCloser
	br *bufio.Reader
}

// NewStreamConn speaks the line protocol over a byte stream such as TCP.
// A frame is just the next len(dst) bytes, a short frame can't be told
// apart from a slow one.
func NewStreamConn(rw io.ReadWriteCloser) Conn {
	return &streamConn{rw: rw, br: bufio.NewReaderSize(rw, 64*1024)}
}

func (s *streamConn) WriteLine(line string) error {
	_, err := io.WriteString(s.rw, line)
	return err
}

func (s *streamConn) ReadLine() (string, error) { return s.br.ReadString('\n') }

func (s *streamConn) ReadBlob(dst []byte) error {
	_, err := io.ReadFull(s.br, dst)
	return err
}

func (s *streamConn) Close() error { return s.rw.Close() }

type socketConn struct {
	conn *websocket.Conn
}

// NewSocketConn speaks the protocol over a websocket: one text message
// per line and one binary message per frame.
func NewSocketConn(conn *websocket.Conn) Conn { return &socketConn{conn: conn} }

func (s *socketConn) WriteLine(line string) error {
	return s.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (s *socketConn) ReadLine() (string, error) {
	mt, data, err := s.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	if mt != websocket.TextMessage {
		return "", fmt.Errorf("%w: got %v message instead of a line", ErrFraming, mt)
	}
	line := string(data)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	return line, nil
}

// ReadBlob leaves dst untouched unless the message has exactly
// len(dst) bytes.
func (s *socketConn) ReadBlob(dst []byte) error {
	mt, data, err := s.conn.ReadMessage()
	if err != nil {
		return err
	}
	if mt != websocket.BinaryMessage {
		return fmt.Errorf("%w: got %v message instead of a frame", ErrFraming, mt)
	}
	if len(data) != len(dst) {
		return fmt.Errorf("%w: frame has %v bytes, want %v", ErrFraming, len(data), len(dst))
	}
	copy(dst, data)
	return nil
}

func (s *socketConn) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return s.conn.Close()
}
