// Package viewer models the per-document paginated asset viewer as a tagged
// state (Loading, Ready, Failed) with pure transition functions.
package viewer

import "math"

// Phase is the viewer state tag.
type Phase int

const (
	// PhaseLoading waits for the asset to decode.
	PhaseLoading Phase = iota
	// PhaseReady has a decoded asset and a current page.
	PhaseReady
	// PhaseFailed is terminal; there is no retry.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Navigation directions.
const (
	Previous = -1
	Next     = +1
)

// Document is a decoded paginated asset.
type Document interface {
	NumPages() int
	// PageWidth returns the intrinsic width of a 1-based page.
	PageWidth(page int) float64
}

// State is one document's viewer state. While Ready, 1 <= CurrentPage <= TotalPages.
type State struct {
	DocID       string
	Path        string
	Phase       Phase
	Handle      Document
	CurrentPage int
	TotalPages  int
	// Seq identifies the most recently requested page render.
	Seq uint64
	Err error
}

// Loading returns the initial state of a freshly built gallery entry.
func Loading(docID, path string) State {
	return State{DocID: docID, Path: path, Phase: PhaseLoading}
}

// Opened moves Loading to Ready on page 1 and requests its render.
// A document with no pages fails instead. Any other phase is returned unchanged.
func Opened(s State, h Document) State {
	if s.Phase != PhaseLoading {
		return s
	}
	if h == nil || h.NumPages() < 1 {
		return OpenFailed(s, errNoPages)
	}
	s.Phase = PhaseReady
	s.Handle = h
	s.TotalPages = h.NumPages()
	s.CurrentPage = 1
	s.Seq++
	return s
}

// OpenFailed moves Loading to the terminal Failed phase.
func OpenFailed(s State, err error) State {
	if s.Phase != PhaseLoading {
		return s
	}
	s.Phase = PhaseFailed
	s.Err = err
	return s
}

// Navigate moves the current page by direction (-1 or +1). The move is applied
// only from Ready and only when the target stays within [1, TotalPages]; there
// is no wraparound. It reports whether the state changed.
func Navigate(s State, direction int) (State, bool) {
	if s.Phase != PhaseReady || (direction != Previous && direction != Next) {
		return s, false
	}
	target := s.CurrentPage + direction
	if target < 1 || target > s.TotalPages {
		return s, false
	}
	s.CurrentPage = target
	s.Seq++
	return s, true
}

// IsCurrent reports whether a render issued with seq is still the latest one.
func IsCurrent(s State, seq uint64) bool {
	return s.Phase == PhaseReady && s.Seq == seq
}

// CanPrevious reports whether the previous-page control is enabled.
func CanPrevious(s State) bool { return s.Phase == PhaseReady && s.CurrentPage > 1 }

// CanNext reports whether the next-page control is enabled.
func CanNext(s State) bool { return s.Phase == PhaseReady && s.CurrentPage < s.TotalPages }

// Scale fits a page of intrinsicWidth into maxWidth without exceeding scaleCap.
func Scale(maxWidth, intrinsicWidth, scaleCap float64) float64 {
	if intrinsicWidth <= 0 || maxWidth <= 0 {
		return scaleCap
	}
	return math.Min(maxWidth/intrinsicWidth, scaleCap)
}
