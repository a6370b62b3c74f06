package session

import (
	"github.com/kailas-cloud/evalview/internal/domain/view"
	"github.com/kailas-cloud/evalview/internal/usecase/viewer"
)

// Toggle is the document gallery control state.
type Toggle struct {
	Enabled bool   `json:"enabled"`
	Label   string `json:"label"`
}

// Toggle labels.
const (
	ShowDocumentLabel = "Show Document"
	HideDocumentLabel = "Hide Document"
)

// Surface is the display the session drives. Implementations are only called
// from the session loop and need no locking.
type Surface interface {
	viewer.Display

	// Capture reads the displayed aggregate report into a view-model.
	Capture() view.ViewModel
	// InstallControls inserts the document selector, reset and toggle controls.
	InstallControls(docIDs []string)
	// Apply runs every section renderer against vm.
	Apply(vm view.ViewModel)
	SetTitle(title string)
	// SetSelection marks docID in the selector; "" selects the aggregate.
	SetSelection(docID string)
	// SetGalleryVisible shows or hides the gallery and the two-column layout with it.
	SetGalleryVisible(visible bool)
	SetToggle(t Toggle)
	// HTML serializes the current surface.
	HTML() (string, error)
}
