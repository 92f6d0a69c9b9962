package livre

// Navigator tracks the current page over an immutable page sequence. It is a
// small, single-owner state machine: callers re-read state after each
// mutator. It is not safe for concurrent use; wrap it (see Session) when
// shared.
type Navigator struct {
	pages   []Page
	cursor  int
	onClose func()
}

// NewNavigator creates a navigator positioned on the first page.
func NewNavigator(pages []Page) *Navigator {
	return &Navigator{pages: pages}
}

// SetPages replaces the page sequence wholesale and resets the cursor.
func (n *Navigator) SetPages(pages []Page) {
	n.pages = pages
	n.cursor = 0
}

// SetCloseFunc registers the callback invoked when Escape is handled.
func (n *Navigator) SetCloseFunc(fn func()) {
	n.onClose = fn
}

// Len returns the number of pages.
func (n *Navigator) Len() int {
	return len(n.pages)
}

// Cursor returns the current page index.
func (n *Navigator) Cursor() int {
	return n.cursor
}

// Current returns the current page. The second return is false when the
// sequence is empty.
func (n *Navigator) Current() (Page, bool) {
	if len(n.pages) == 0 {
		return Page{}, false
	}
	return n.pages[n.cursor], true
}

// GoToPage moves to page i, clamped into [0, len-1]. Never panics, never
// leaves the cursor out of range.
func (n *Navigator) GoToPage(i int) {
	if len(n.pages) == 0 {
		n.cursor = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.pages)-1 {
		i = len(n.pages) - 1
	}
	n.cursor = i
}

// CanGoNext reports whether a next page exists.
func (n *Navigator) CanGoNext() bool {
	return n.cursor < len(n.pages)-1
}

// CanGoPrevious reports whether a previous page exists.
func (n *Navigator) CanGoPrevious() bool {
	return n.cursor > 0 && len(n.pages) > 0
}

// GoToNext advances one page; no-op on the last page.
func (n *Navigator) GoToNext() {
	if n.CanGoNext() {
		n.cursor++
	}
}

// GoToPrevious steps back one page; no-op on the first page.
func (n *Navigator) GoToPrevious() {
	if n.CanGoPrevious() {
		n.cursor--
	}
}

// GoToFirst jumps to the first page.
func (n *Navigator) GoToFirst() {
	n.cursor = 0
}

// GoToLast jumps to the last page.
func (n *Navigator) GoToLast() {
	if len(n.pages) > 0 {
		n.cursor = len(n.pages) - 1
	}
}

// Progress returns reading progress as a percentage; 0 for an empty book.
func (n *Navigator) Progress() float64 {
	if len(n.pages) == 0 {
		return 0
	}
	return float64(n.cursor+1) / float64(len(n.pages)) * 100
}

// KeyEvent is a keyboard event delivered to the viewer. FromInput marks
// events originating inside a text-input element; those never navigate so
// embedded forms stay usable.
type KeyEvent struct {
	Key       string `json:"key"`
	FromInput bool   `json:"fromInput"`
}

// HandleKey applies a keyboard event and reports whether it was consumed.
// Escape invokes the close callback rather than moving the cursor.
func (n *Navigator) HandleKey(ev KeyEvent) bool {
	if ev.FromInput {
		return false
	}
	switch ev.Key {
	case "ArrowRight", "ArrowDown":
		n.GoToNext()
	case "ArrowLeft", "ArrowUp":
		n.GoToPrevious()
	case "Home":
		n.GoToFirst()
	case "End":
		n.GoToLast()
	case "Escape":
		if n.onClose != nil {
			n.onClose()
		}
	default:
		return false
	}
	return true
}
