package interaction

import (
	"fmt"
	"testing"

	"github.com/voc/voctozoom/pkg/channel"
	"github.com/voc/voctozoom/pkg/crop"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/logger"
	"github.com/voc/voctozoom/pkg/remote"
)

var frame = geometry.Frame{W: 1280, H: 720}

type source struct {
	calls  []geometry.Rect
	reject bool
	err    error
}

func (s *source) Image([]byte) error { return nil }

func (s *source) ZoomTo(r geometry.Rect) (bool, error) {
	s.calls = append(s.calls, r)
	return !s.reject && s.err == nil, s.err
}

func setup(t *testing.T, n int) (*Machine, []*channel.Channel, []*source) {
	t.Helper()
	panes, _ := channel.Layout(frame, 2, n)
	var chs []*channel.Channel
	var srcs []*source
	for i := 0; i < n; i++ {
		src := &source{}
		srcs = append(srcs, src)
		chs = append(chs, channel.New(fmt.Sprintf("cam%d", i), frame, panes[i], src, logger.Nop()))
	}
	return New(chs, crop.FactorOf(0.9)), chs, srcs
}

func pt(x, y int) geometry.Point { return geometry.Point{X: x, Y: y} }

func dispatch(t *testing.T, m *Machine, events ...Event) {
	t.Helper()
	for _, ev := range events {
		if _, err := m.Dispatch(ev); err != nil {
			t.Fatalf("Dispatch(%#v) = %v", ev, err)
		}
	}
}

func startAt(t *testing.T, ch *channel.Channel, r geometry.Rect) {
	t.Helper()
	if ok, err := ch.Propose(r); !ok || err != nil {
		t.Fatalf("Propose(%v) = %v %v", r, ok, err)
	}
}

func TestPanFullPane(t *testing.T) {
	m, chs, _ := setup(t, 1)
	startAt(t, chs[0], geometry.Rect{X: 320, Y: 180, W: 640, H: 360})

	dispatch(t, m, ButtonDown{Button: Left, Pos: pt(100, 100)}, Motion{Pos: pt(110, 105)})
	if got := chs[0].Crop(); got != (geometry.Rect{X: 340, Y: 190, W: 640, H: 360}) {
		t.Errorf("crop %v", got)
	}
	// panning is incremental
	dispatch(t, m, Motion{Pos: pt(120, 105)}, ButtonUp{Button: Left, Pos: pt(120, 105)})
	if got := chs[0].Crop(); got != (geometry.Rect{X: 360, Y: 190, W: 640, H: 360}) {
		t.Errorf("crop %v", got)
	}
	// released
	dispatch(t, m, Motion{Pos: pt(200, 200)})
	if got := chs[0].Crop(); got.X != 360 {
		t.Errorf("pan without a button: %v", got)
	}
}

func TestPanZoomPaneGoesOpposite(t *testing.T) {
	m, chs, _ := setup(t, 1)
	startAt(t, chs[0], geometry.Rect{X: 320, Y: 180, W: 640, H: 360})

	dispatch(t, m, ButtonDown{Button: Left, Pos: pt(700, 100)}, Motion{Pos: pt(710, 105)})
	if got := chs[0].Crop(); got != (geometry.Rect{X: 310, Y: 175, W: 640, H: 360}) {
		t.Errorf("crop %v", got)
	}
}

func TestPanAcrossPanesIsIgnored(t *testing.T) {
	m, chs, srcs := setup(t, 1)
	startAt(t, chs[0], geometry.Rect{X: 320, Y: 180, W: 640, H: 360})
	calls := len(srcs[0].calls)

	dispatch(t, m, ButtonDown{Button: Left, Pos: pt(100, 100)}, Motion{Pos: pt(700, 100)}, Motion{Pos: pt(700, 900)})
	if len(srcs[0].calls) != calls {
		t.Errorf("motion outside the start pane was sent: %v", srcs[0].calls)
	}
	// still active, measured from the original start
	dispatch(t, m, Motion{Pos: pt(105, 100)})
	if got := chs[0].Crop(); got.X != 330 {
		t.Errorf("crop %v", got)
	}
}

func TestPanNoopAtBorder(t *testing.T) {
	m, _, srcs := setup(t, 1)
	dispatch(t, m, ButtonDown{Button: Left, Pos: pt(100, 100)}, Motion{Pos: pt(110, 110)})
	if len(srcs[0].calls) != 0 {
		t.Errorf("unchanged crop was sent: %v", srcs[0].calls)
	}
}

func TestRubberBandSelect(t *testing.T) {
	m, chs, srcs := setup(t, 1)

	dispatch(t, m, ButtonDown{Button: Right, Pos: pt(50, 50)})
	redraw, err := m.Dispatch(Motion{Pos: pt(150, 150)})
	if !redraw || err != nil {
		t.Errorf("Dispatch() = %v %v", redraw, err)
	}
	if r, ok := chs[0].Preview(); !ok || r != (geometry.Rect{X: 50, Y: 50, W: 100, H: 100}) {
		t.Errorf("preview %v %v", r, ok)
	}
	if len(srcs[0].calls) != 0 {
		t.Errorf("preview was sent")
	}

	dispatch(t, m, ButtonUp{Button: Right, Pos: pt(150, 150)})
	if got := chs[0].Crop(); got != (geometry.Rect{X: 0, Y: 0, W: 720, H: 405}) {
		t.Errorf("crop %v", got)
	}
	if _, ok := chs[0].Preview(); ok {
		t.Errorf("preview is still set")
	}
}

func TestRubberBandCenteredOnDragStart(t *testing.T) {
	tests := []struct {
		name       string
		start, end geometry.Point
		want       geometry.Rect
	}{
		{name: "down right", start: pt(50, 50), end: pt(150, 150), want: geometry.Rect{X: 0, Y: 0, W: 720, H: 405}},
		{name: "up left", start: pt(150, 150), end: pt(50, 50), want: geometry.Rect{X: 0, Y: 98, W: 720, H: 405}},
		{name: "small", start: pt(320, 180), end: pt(340, 190), want: geometry.Rect{X: 600, Y: 338, W: 80, H: 45}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, chs, _ := setup(t, 1)
			dispatch(t, m, ButtonDown{Button: Right, Pos: tt.start}, Motion{Pos: tt.end}, ButtonUp{Button: Right, Pos: tt.end})
			if got := chs[0].Crop(); got != tt.want {
				t.Errorf("crop %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRubberBandRejectedClearsPreview(t *testing.T) {
	m, chs, srcs := setup(t, 1)
	srcs[0].reject = true
	dispatch(t, m, ButtonDown{Button: Right, Pos: pt(50, 50)}, Motion{Pos: pt(150, 150)}, ButtonUp{Button: Right})
	if _, ok := chs[0].Preview(); ok || chs[0].Crop() != frame.Full() || chs[0].CanUndo() {
		t.Errorf("bad state after rejection, crop %v", chs[0].Crop())
	}
	if len(srcs[0].calls) != 1 {
		t.Errorf("calls %v", srcs[0].calls)
	}
}

func TestRubberBandAcrossPanes(t *testing.T) {
	m, chs, srcs := setup(t, 1)
	dispatch(t, m, ButtonDown{Button: Right, Pos: pt(600, 50)}, Motion{Pos: pt(700, 100)}, ButtonUp{Button: Right})
	if len(srcs[0].calls) != 0 {
		t.Errorf("selection over two panes was sent")
	}
	if _, ok := chs[0].Preview(); ok {
		t.Errorf("preview is still set")
	}
}

func TestWheel(t *testing.T) {
	m, chs, _ := setup(t, 1)

	dispatch(t, m, Wheel{Pos: pt(100, 100), Steps: 1})
	if chs[0].Crop() != frame.Full() {
		t.Errorf("wheel in the full pane zoomed")
	}
	dispatch(t, m, Wheel{Pos: pt(960, 180), Steps: 1})
	if got := chs[0].Crop(); got != (geometry.Rect{X: 64, Y: 36, W: 1152, H: 648}) {
		t.Errorf("crop %v", got)
	}
	dispatch(t, m, Wheel{Pos: pt(960, 180), Steps: -1})
	if got := chs[0].Crop(); got != frame.Full() {
		t.Errorf("crop %v", got)
	}
}

func TestUndoKey(t *testing.T) {
	m, chs, srcs := setup(t, 1)
	dispatch(t, m, Wheel{Pos: pt(960, 180), Steps: 1})

	dispatch(t, m, Key{Pos: pt(2000, 2000), Action: Undo})
	if chs[0].Crop() == frame.Full() {
		t.Errorf("undo outside of panes")
	}
	dispatch(t, m, Key{Pos: pt(10, 10), Action: Undo})
	if chs[0].Crop() != frame.Full() {
		t.Errorf("crop %v", chs[0].Crop())
	}
	calls := len(srcs[0].calls)
	dispatch(t, m, Key{Pos: pt(10, 10), Action: Undo})
	if len(srcs[0].calls) != calls {
		t.Errorf("second undo was sent")
	}
}

func TestResetKey(t *testing.T) {
	m, chs, _ := setup(t, 1)
	startAt(t, chs[0], geometry.Rect{W: 640, H: 360})
	dispatch(t, m, Key{Pos: pt(700, 10), Action: Reset})
	if chs[0].Crop() != frame.Full() {
		t.Errorf("crop %v", chs[0].Crop())
	}
}

func TestResolve(t *testing.T) {
	_, chs, srcs := setup(t, 2)
	tests := []struct {
		name string
		a, b geometry.Point
		idx  int
		kind channel.PaneKind
		ok   bool
	}{
		{name: "first full", a: pt(1, 1), b: pt(600, 300), idx: 0, kind: channel.FullPane, ok: true},
		{name: "second zoom", a: pt(641, 361), b: pt(1279, 719), idx: 1, kind: channel.ZoomPane, ok: true},
		{name: "two channels", a: pt(1, 1), b: pt(1, 400), idx: -1},
		{name: "outside", a: pt(1, 1), b: pt(1, 800), idx: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, kind, ok := Resolve(chs, tt.a, tt.b)
			if idx != tt.idx || kind != tt.kind || ok != tt.ok {
				t.Errorf("Resolve() = %v %v %v", idx, kind, ok)
			}
		})
	}

	srcs[1].err = fmt.Errorf("%w: eof", remote.ErrDisconnected)
	if _, err := chs[1].Propose(geometry.Rect{W: 16, H: 9}); err == nil {
		t.Fatalf("expected an error")
	}
	if _, _, ok := Resolve(chs, pt(641, 361), pt(700, 400)); ok {
		t.Errorf("disabled channel was resolved")
	}
}

func TestDispatchError(t *testing.T) {
	m, chs, srcs := setup(t, 1)
	srcs[0].err = fmt.Errorf("%w: eof", remote.ErrDisconnected)
	if _, err := m.Dispatch(Wheel{Pos: pt(960, 180), Steps: 1}); err == nil {
		t.Errorf("expected an error")
	}
	if chs[0].Active() {
		t.Errorf("channel is still active")
	}
}
