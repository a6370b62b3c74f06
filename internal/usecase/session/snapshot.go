package session

import "github.com/kailas-cloud/evalview/internal/domain/view"

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Initialized    bool               `json:"initialized"`
	FilterDoc      *string            `json:"filter_doc"`
	Title          string             `json:"title"`
	GalleryVisible bool               `json:"gallery_visible"`
	Toggle         Toggle             `json:"toggle"`
	Documents      []string           `json:"documents"`
	Thresholds     map[string]float64 `json:"thresholds"`
	View           view.ViewModel     `json:"view"`
	Viewers        []ViewerSnapshot   `json:"viewers"`
}

// ViewerSnapshot describes one document viewer.
type ViewerSnapshot struct {
	DocID       string `json:"doc_id"`
	Path        string `json:"path"`
	Phase       string `json:"phase"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
	CanPrevious bool   `json:"can_previous"`
	CanNext     bool   `json:"can_next"`
	Error       string `json:"error,omitempty"`
}
