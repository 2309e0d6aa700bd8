package crop

// Slot keeps the one crop an undo can go back to.
type Slot struct {
	crop Rect
	set  bool
}

// Store replaces the slot content with r.
func (s *Slot) Store(r Rect) { s.crop, s.set = r, true }

// Undo returns the stored crop if there is one. It does not clear the
// slot, that happens only once the remote source has confirmed it.
func (s *Slot) Undo() (Rect, bool) { return s.crop, s.set }

func (s *Slot) Clear() { *s = Slot{} }
