package viewer

import (
	"errors"
	"testing"
)

type fakeDoc struct {
	pages int
	width float64
}

func (d fakeDoc) NumPages() int           { return d.pages }
func (d fakeDoc) PageWidth(_ int) float64 { return d.width }

func ready(t *testing.T, pages int) State {
	t.Helper()
	s := Opened(Loading("doc-a", "files/a.pdf"), fakeDoc{pages: pages, width: 612})
	if s.Phase != PhaseReady {
		t.Fatalf("expected ready, got %s", s.Phase)
	}
	return s
}

func TestOpened_StartsAtFirstPage(t *testing.T) {
	s := ready(t, 3)
	if s.CurrentPage != 1 || s.TotalPages != 3 {
		t.Errorf("expected page 1 of 3, got %d of %d", s.CurrentPage, s.TotalPages)
	}
	if s.Seq != 1 {
		t.Errorf("expected first render requested (seq 1), got %d", s.Seq)
	}
}

func TestOpened_NoPagesFails(t *testing.T) {
	s := Opened(Loading("doc-a", "a.pdf"), fakeDoc{pages: 0})
	if s.Phase != PhaseFailed {
		t.Errorf("expected failed, got %s", s.Phase)
	}
}

func TestOpenFailed_IsTerminal(t *testing.T) {
	s := OpenFailed(Loading("doc-a", "a.pdf"), errors.New("corrupt"))
	if s.Phase != PhaseFailed {
		t.Fatalf("expected failed, got %s", s.Phase)
	}
	if again := Opened(s, fakeDoc{pages: 2}); again.Phase != PhaseFailed {
		t.Error("failed viewer must not become ready")
	}
	if _, changed := Navigate(s, Next); changed {
		t.Error("navigation must be ignored while failed")
	}
}

func TestNavigate_Bounds(t *testing.T) {
	s := ready(t, 2)

	if got, changed := Navigate(s, Previous); changed || got.CurrentPage != 1 {
		t.Errorf("previous at page 1 must be ignored, got page %d", got.CurrentPage)
	}

	s, changed := Navigate(s, Next)
	if !changed || s.CurrentPage != 2 {
		t.Fatalf("expected page 2, got %d", s.CurrentPage)
	}

	if got, changed := Navigate(s, Next); changed || got.CurrentPage != 2 {
		t.Errorf("next at last page must be ignored, got page %d", got.CurrentPage)
	}
}

func TestNavigate_InvalidDirection(t *testing.T) {
	s := ready(t, 5)
	for _, dir := range []int{0, 2, -2} {
		if _, changed := Navigate(s, dir); changed {
			t.Errorf("direction %d must be ignored", dir)
		}
	}
}

func TestNavigate_WhileLoadingIgnored(t *testing.T) {
	if _, changed := Navigate(Loading("d", "d.pdf"), Next); changed {
		t.Error("navigation must be ignored while loading")
	}
}

func TestIsCurrent_StaleRender(t *testing.T) {
	s := ready(t, 3)
	first := s.Seq
	s, _ = Navigate(s, Next)
	if IsCurrent(s, first) {
		t.Error("render for page 1 must be stale after navigating")
	}
	if !IsCurrent(s, s.Seq) {
		t.Error("latest render must be current")
	}
}

func TestButtonEnablement(t *testing.T) {
	s := ready(t, 2)
	if CanPrevious(s) || !CanNext(s) {
		t.Error("page 1: previous disabled, next enabled")
	}
	s, _ = Navigate(s, Next)
	if !CanPrevious(s) || CanNext(s) {
		t.Error("last page: previous enabled, next disabled")
	}
	single := ready(t, 1)
	if CanPrevious(single) || CanNext(single) {
		t.Error("single page: both disabled")
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name                    string
		maxWidth, width, capVal float64
		want                    float64
	}{
		{"shrinks wide page", 800, 1600, 1.5, 0.5},
		{"capped magnification", 800, 400, 1.5, 1.5},
		{"exact fit", 800, 800, 1.5, 1},
		{"zero width uses cap", 800, 0, 1.5, 1.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Scale(tc.maxWidth, tc.width, tc.capVal); got != tc.want {
				t.Errorf("Scale=%v want %v", got, tc.want)
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseLoading.String() != "loading" || PhaseReady.String() != "ready" || PhaseFailed.String() != "failed" {
		t.Error("unexpected phase names")
	}
}
