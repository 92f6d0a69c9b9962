package livre

import (
	"math/rand"
	"testing"
)

func testPages(n int) []Page {
	textes := make([]Texte, n)
	for i := range textes {
		textes[i] = Texte{ID: string(rune('a' + i)), Titre: "T", Type: TexteFormeProse, MarcheID: "m"}
	}
	return BuildPages(textes, Options{})
}

func TestNavigator_BoundsUnderArbitrarySequences(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7} {
		nav := NewNavigator(testPages(n))
		rng := rand.New(rand.NewSource(int64(n) + 1))

		for i := 0; i < 500; i++ {
			switch rng.Intn(5) {
			case 0:
				nav.GoToNext()
			case 1:
				nav.GoToPrevious()
			case 2:
				nav.GoToPage(rng.Intn(50) - 25)
			case 3:
				nav.GoToFirst()
			case 4:
				nav.GoToLast()
			}

			c := nav.Cursor()
			if n == 0 {
				if c != 0 {
					t.Fatalf("n=0: cursor drifted to %d", c)
				}
				continue
			}
			if c < 0 || c > n-1 {
				t.Fatalf("n=%d: cursor out of range: %d", n, c)
			}
			if _, ok := nav.Current(); !ok {
				t.Fatalf("n=%d: Current undefined with non-empty pages", n)
			}
		}
	}
}

func TestNavigator_GuardsAtEdges(t *testing.T) {
	nav := NewNavigator(testPages(3))

	if nav.CanGoPrevious() {
		t.Fatal("CanGoPrevious true on first page")
	}
	nav.GoToPrevious() // no-op
	if nav.Cursor() != 0 {
		t.Fatalf("cursor moved on guarded previous: %d", nav.Cursor())
	}

	nav.GoToLast()
	if nav.CanGoNext() {
		t.Fatal("CanGoNext true on last page")
	}
	nav.GoToNext() // no-op
	if nav.Cursor() != 2 {
		t.Fatalf("cursor moved on guarded next: %d", nav.Cursor())
	}
}

func TestNavigator_Progress(t *testing.T) {
	nav := NewNavigator(nil)
	if nav.Progress() != 0 {
		t.Fatalf("empty book progress: %f", nav.Progress())
	}

	nav = NewNavigator(testPages(4))
	if nav.Progress() != 25 {
		t.Fatalf("first page progress: %f", nav.Progress())
	}
	nav.GoToLast()
	if nav.Progress() != 100 {
		t.Fatalf("last page progress: %f", nav.Progress())
	}
}

func TestNavigator_HandleKey(t *testing.T) {
	nav := NewNavigator(testPages(3))
	closed := false
	nav.SetCloseFunc(func() { closed = true })

	if !nav.HandleKey(KeyEvent{Key: "ArrowRight"}) || nav.Cursor() != 1 {
		t.Fatalf("ArrowRight: cursor %d", nav.Cursor())
	}
	if !nav.HandleKey(KeyEvent{Key: "ArrowDown"}) || nav.Cursor() != 2 {
		t.Fatalf("ArrowDown: cursor %d", nav.Cursor())
	}
	if !nav.HandleKey(KeyEvent{Key: "ArrowLeft"}) || nav.Cursor() != 1 {
		t.Fatalf("ArrowLeft: cursor %d", nav.Cursor())
	}
	if !nav.HandleKey(KeyEvent{Key: "Home"}) || nav.Cursor() != 0 {
		t.Fatalf("Home: cursor %d", nav.Cursor())
	}
	if !nav.HandleKey(KeyEvent{Key: "End"}) || nav.Cursor() != 2 {
		t.Fatalf("End: cursor %d", nav.Cursor())
	}
	if nav.HandleKey(KeyEvent{Key: "x"}) {
		t.Fatal("unknown key consumed")
	}

	if !nav.HandleKey(KeyEvent{Key: "Escape"}) {
		t.Fatal("Escape not consumed")
	}
	if !closed {
		t.Fatal("Escape did not invoke close callback")
	}
	if nav.Cursor() != 2 {
		t.Fatalf("Escape moved the cursor: %d", nav.Cursor())
	}
}

func TestNavigator_InputFocusGuard(t *testing.T) {
	nav := NewNavigator(testPages(3))

	if nav.HandleKey(KeyEvent{Key: "ArrowRight", FromInput: true}) {
		t.Fatal("event from input element consumed")
	}
	if nav.Cursor() != 0 {
		t.Fatalf("input-focused event navigated: %d", nav.Cursor())
	}
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()
	s := store.Create("expl-1", testPages(3))

	if s.ID == "" {
		t.Fatal("empty session id")
	}
	got, ok := store.Get(s.ID)
	if !ok || got != s {
		t.Fatal("session not retrievable")
	}

	if err := s.Apply("next", 0); err != nil {
		t.Fatal(err)
	}
	if st := s.Snapshot(); st.Cursor != 1 || st.TotalPages != 3 || !st.CanGoPrevious {
		t.Fatalf("bad snapshot: %+v", st)
	}

	if err := s.Apply("warp", 0); err != ErrUnknownAction {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}

	s.HandleKey(KeyEvent{Key: "Escape"})
	if !s.Closed() {
		t.Fatal("session not closed after Escape")
	}

	store.Delete(s.ID)
	if _, ok := store.Get(s.ID); ok {
		t.Fatal("session survived delete")
	}
	if store.Len() != 0 {
		t.Fatalf("store not empty: %d", store.Len())
	}
}
