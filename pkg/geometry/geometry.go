// Package geometry maps between source frame coordinates and the
// fixed display panes that show a frame and its magnified crop.
//
// All arithmetic is integer and truncates toward zero, so the same
// input always maps to the same output.
package geometry

import "fmt"

type Point struct{ X, Y int }

type Size struct{ W, H int }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Rect is an axis-aligned rectangle. It is used both in frame space
// (crops) and display space (panes, previews).
type Rect struct{ X, Y, W, H int }

func (r Rect) String() string { return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y) }

func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies in the half-open rectangle [X, X+W) x [Y, Y+H).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ContainsRect reports whether o lies fully inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Enclosing returns the smallest rectangle with both points as corners.
func Enclosing(a, b Point) Rect {
	return Rect{X: min(a.X, b.X), Y: min(a.Y, b.Y), W: abs(a.X - b.X), H: abs(a.Y - b.Y)}
}

// Frame is the fixed source frame space agreed on with the remote
// source at startup.
type Frame struct{ W, H int }

// Full returns the crop that covers the whole frame.
func (f Frame) Full() Rect { return Rect{W: f.W, H: f.H} }

func (f Frame) Size() Size { return Size{W: f.W, H: f.H} }

// Bytes is the length of one raw RGB24 frame.
func (f Frame) Bytes() int { return f.W * f.H * 3 }

// Valid reports whether r is a crop the remote source may accept.
func (f Frame) Valid(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.W > 0 && r.H > 0 && r.X+r.W <= f.W && r.Y+r.H <= f.H
}

// Aspect returns the smallest integer width and height with the
// frame's aspect ratio (16x9 for 1280x720).
func (f Frame) Aspect() Size {
	g := gcd(f.W, f.H)
	if g == 0 {
		return Size{}
	}
	return Size{W: f.W / g, H: f.H / g}
}

func (f Frame) String() string { return fmt.Sprintf("%dx%d", f.W, f.H) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
