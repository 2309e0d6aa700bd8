package source

import (
	"fmt"
	"net"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voc/voctozoom/pkg/channel"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/logger"
	"github.com/voc/voctozoom/pkg/network/socket"
	"github.com/voc/voctozoom/pkg/remote"
)

var frame = geometry.Frame{W: 64, H: 36}

func listen(t *testing.T, s *Source) string {
	t.Helper()
	l, err := socket.Listen("tcp", 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = l.Close() })
	go func() { _ = s.Serve(l) }()
	return fmt.Sprintf("tcp://127.0.0.1:%d", l.Addr().(*net.TCPAddr).Port)
}

func TestRoundTrip(t *testing.T) {
	src := New(frame, logger.Nop())
	ws := httptest.NewServer(src)
	defer ws.Close()

	for _, addr := range []string{listen(t, src), "ws" + strings.TrimPrefix(ws.URL, "http")} {
		t.Run(addr[:strings.Index(addr, ":")], func(t *testing.T) {
			c, err := remote.Connect("test", addr, 0, frame, logger.Nop())
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = c.Close() }()

			panes, _ := channel.Layout(frame, 2, 1)
			ch := channel.New("test", frame, panes[0], c, logger.Nop())
			if err = ch.Refresh(); err != nil {
				t.Fatalf("Refresh() = %v", err)
			}
			want := geometry.Rect{X: 16, Y: 9, W: 32, H: 18}
			if ok, err := ch.Propose(want); !ok || err != nil {
				t.Fatalf("Propose() = %v %v", ok, err)
			}
			if src.Crop() != want {
				t.Errorf("source crop %v", src.Crop())
			}
			if ok, err := ch.Undo(); !ok || err != nil || src.Crop() != frame.Full() {
				t.Errorf("Undo() = %v %v, source crop %v", ok, err, src.Crop())
			}
		})
	}
}

func TestHandshakeMismatch(t *testing.T) {
	addr := listen(t, New(geometry.Frame{W: 32, H: 18}, logger.Nop()))
	if _, err := remote.Connect("test", addr, 0, frame, logger.Nop()); err == nil {
		t.Errorf("expected %v", remote.ErrResolutionMismatch)
	}
}

func TestRejectsBadCrops(t *testing.T) {
	s := New(frame, logger.Nop())
	for _, cmd := range []string{"zoom_to 65x36+0+0\n", "zoom_to 10x10+-1+0\n", "zoom_to nope\n", "dance\n"} {
		var b strings.Builder
		if err := s.exec(cmd, streamReplier{w: &b}); err != nil {
			t.Fatal(err)
		}
		if b.String() != "ERR\n" {
			t.Errorf("%q -> %q", cmd, b.String())
		}
	}
	if s.Crop() != frame.Full() {
		t.Errorf("crop changed to %v", s.Crop())
	}
}

func TestImage(t *testing.T) {
	s := New(frame, logger.Nop())
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()
	go s.serveStream(server)

	if _, err := client.Write([]byte("get_image\n")); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, frame.Bytes())
	n := 0
	for n < len(buf) {
		k, err := client.Read(buf[n:])
		if err != nil {
			t.Fatal(err)
		}
		n += k
	}
	// moving bar starts at x=8
	if buf[8*3] != 0xff || buf[8*3+2] != 0xff {
		t.Errorf("no bar at x=8: %v", buf[8*3:8*3+3])
	}
}
