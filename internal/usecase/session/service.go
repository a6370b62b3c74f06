// Package session owns the interactive report state: which view-model is active,
// the captured aggregate it resets to, and the document viewers of the gallery.
//
// All state lives on one event loop (Run). Public methods submit a closure to the
// loop and wait for it, so transitions never overlap.
package session

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/evalview/internal/domain"
	"github.com/kailas-cloud/evalview/internal/domain/record"
	"github.com/kailas-cloud/evalview/internal/domain/view"
	domviewer "github.com/kailas-cloud/evalview/internal/domain/viewer"
	"github.com/kailas-cloud/evalview/internal/usecase/projector"
	"github.com/kailas-cloud/evalview/internal/usecase/viewer"
)

// Session is one interactive report.
type Session struct {
	surface Surface
	viewers *viewer.Registry
	logger  *zap.Logger

	ops         chan func()
	done        chan struct{}
	initialized atomic.Bool

	selections *prometheus.CounterVec
	activeView *prometheus.GaugeVec

	// Loop-owned state.
	runCtx         context.Context
	records        []record.Record
	byID           map[string]record.Record
	thresholds     map[string]float64
	aggregate      *view.ViewModel
	active         view.ViewModel
	filterDoc      *string
	title          string
	galleryVisible bool
	toggle         Toggle
}

// New creates a session over surface. Paginated gallery assets are opened with
// decoder and painted with painter.
func New(surface Surface, decoder viewer.Decoder, painter viewer.Painter, logger *zap.Logger) *Session {
	s := &Session{
		surface: surface,
		logger:  logger,
		ops:     make(chan func()),
		done:    make(chan struct{}),
		byID:    make(map[string]record.Record),
		runCtx:  context.Background(),
	}
	s.viewers = viewer.New(decoder, painter, surface, s, logger)
	return s
}

// WithMetrics attaches selection and active view instruments. Either may be nil.
func (s *Session) WithMetrics(selections *prometheus.CounterVec, activeView *prometheus.GaugeVec) *Session {
	s.selections = selections
	s.activeView = activeView
	return s
}

// Viewers exposes the viewer registry for configuration before Run.
func (s *Session) Viewers() *viewer.Registry {
	return s.viewers
}

// Run processes submitted operations until ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	s.runCtx = ctx
	for {
		select {
		case <-ctx.Done():
			return nil
		case op := <-s.ops:
			op()
		}
	}
}

// Post schedules fn on the loop without waiting. It is dropped once the loop has stopped.
func (s *Session) Post(fn func()) {
	select {
	case s.ops <- fn:
	case <-s.done:
	}
}

// do runs fn on the loop and waits for it to finish.
func (s *Session) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	op := func() {
		defer close(finished)
		fn()
	}
	select {
	case s.ops <- op:
	case <-s.done:
		return domain.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

// Initialize captures the aggregate view, installs the filter controls and shows the
// aggregate. Only the first call has any effect.
func (s *Session) Initialize(ctx context.Context, records []record.Record, thresholds map[string]float64) error {
	return s.do(ctx, func() {
		if s.aggregate != nil {
			s.logger.Debug("Session already initialized")
			return
		}

		ids := make([]string, 0, len(records))
		for _, rec := range records {
			if _, dup := s.byID[rec.DocID()]; dup {
				s.logger.Warn("Duplicate document record ignored", zap.String("doc_id", rec.DocID()))
				continue
			}
			s.byID[rec.DocID()] = rec
			s.records = append(s.records, rec)
			ids = append(ids, rec.DocID())
		}
		s.thresholds = thresholds

		captured := s.surface.Capture()
		s.aggregate = &captured
		s.surface.InstallControls(ids)
		s.initialized.Store(true)

		s.showAggregate()
		s.logger.Info("Session initialized",
			zap.Int("records", len(s.records)),
			zap.Int("thresholds", len(thresholds)),
		)
	})
}

// Initialized reports whether Initialize has completed.
func (s *Session) Initialized() bool {
	return s.initialized.Load()
}

// SelectDocument activates the document view of *docID, or the aggregate for nil.
// An unknown doc_id leaves the current view untouched.
func (s *Session) SelectDocument(ctx context.Context, docID *string) error {
	var opErr error
	err := s.do(ctx, func() {
		if s.aggregate == nil {
			opErr = domain.ErrNotInitialized
			return
		}
		if docID == nil {
			s.countSelection("aggregate")
			s.showAggregate()
			return
		}

		rec, ok := s.byID[*docID]
		if !ok {
			s.countSelection("unknown")
			s.logger.Warn("Selection ignored",
				zap.String("doc_id", *docID),
				zap.Error(domain.ErrDocumentNotFound),
			)
			s.refreshToggle()
			return
		}
		s.countSelection("document")
		s.showDocument(rec.DocID(), projector.Project(rec, s.aggregate.DocumentFiles))
	})
	if err != nil {
		return err
	}
	return opErr
}

// ToggleGallery flips document gallery visibility while a document with an asset
// is selected. Otherwise it does nothing.
func (s *Session) ToggleGallery(ctx context.Context) error {
	var opErr error
	err := s.do(ctx, func() {
		if s.aggregate == nil {
			opErr = domain.ErrNotInitialized
			return
		}
		if !s.toggle.Enabled {
			return
		}
		s.galleryVisible = !s.galleryVisible
		s.surface.SetGalleryVisible(s.galleryVisible)
		s.refreshToggle()
	})
	if err != nil {
		return err
	}
	return opErr
}

// Navigate moves the viewer of docID one page in direction (-1 or +1).
func (s *Session) Navigate(ctx context.Context, docID string, direction int) error {
	var opErr error
	err := s.do(ctx, func() {
		opErr = s.viewers.Navigate(s.runCtx, docID, direction)
	})
	if err != nil {
		return err
	}
	return opErr
}

// GalleryAsset reports whether path is a document file listed by the aggregate
// gallery. Any other path, or any path before Initialize, is domain.ErrAssetNotFound.
func (s *Session) GalleryAsset(ctx context.Context, path string) error {
	listed := false
	err := s.do(ctx, func() {
		if s.aggregate == nil {
			return
		}
		for _, p := range s.aggregate.DocumentFiles {
			if p == path {
				listed = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !listed {
		return domain.ErrAssetNotFound
	}
	return nil
}

// Render serializes the current surface.
func (s *Session) Render(ctx context.Context) (string, error) {
	var (
		html   string
		render error
	)
	err := s.do(ctx, func() {
		html, render = s.surface.HTML()
	})
	if err != nil {
		return "", err
	}
	if render != nil {
		return "", fmt.Errorf("render surface: %w", render)
	}
	return html, nil
}

// State returns a snapshot of the session.
func (s *Session) State(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.do(ctx, func() {
		snap = s.snapshot()
	})
	return snap, err
}

func (s *Session) showAggregate() {
	s.filterDoc = nil
	s.active = s.aggregate.Clone()
	s.galleryVisible = false
	s.apply(view.AggregateTitle, "")
	s.setActiveView("aggregate")
}

func (s *Session) showDocument(docID string, vm view.ViewModel) {
	s.filterDoc = &docID
	s.active = vm
	if len(vm.DocumentFiles) == 0 {
		s.galleryVisible = false
	}
	s.apply(view.DocumentTitle(docID), docID)
	s.setActiveView("document")
}

func (s *Session) apply(title, selection string) {
	s.title = title
	s.surface.Apply(s.active)
	s.surface.SetTitle(title)
	s.surface.SetSelection(selection)
	s.surface.SetGalleryVisible(s.galleryVisible)
	s.viewers.Rebuild(s.runCtx, s.active.DocumentFiles)
	s.refreshToggle()

	s.logger.Debug("View activated", zap.String("title", title))
}

func (s *Session) refreshToggle() {
	t := Toggle{
		Enabled: s.filterDoc != nil && len(s.active.DocumentFiles) > 0,
		Label:   ShowDocumentLabel,
	}
	if s.galleryVisible {
		t.Label = HideDocumentLabel
	}
	s.toggle = t
	s.surface.SetToggle(t)
}

func (s *Session) countSelection(outcome string) {
	if s.selections != nil {
		s.selections.WithLabelValues(outcome).Inc()
	}
}

func (s *Session) setActiveView(kind string) {
	if s.activeView == nil {
		return
	}
	for _, k := range []string{"aggregate", "document"} {
		v := 0.0
		if k == kind {
			v = 1
		}
		s.activeView.WithLabelValues(k).Set(v)
	}
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Initialized:    s.aggregate != nil,
		Title:          s.title,
		GalleryVisible: s.galleryVisible,
		Toggle:         s.toggle,
		View:           s.active.Clone(),
		Thresholds:     make(map[string]float64, len(s.thresholds)),
	}
	if s.filterDoc != nil {
		id := *s.filterDoc
		snap.FilterDoc = &id
	}
	for k, v := range s.thresholds {
		snap.Thresholds[k] = v
	}
	for _, rec := range s.records {
		snap.Documents = append(snap.Documents, rec.DocID())
	}
	for _, st := range s.viewers.States() {
		snap.Viewers = append(snap.Viewers, viewerSnapshot(st))
	}
	return snap
}

func viewerSnapshot(st domviewer.State) ViewerSnapshot {
	v := ViewerSnapshot{
		DocID:       st.DocID,
		Path:        st.Path,
		Phase:       st.Phase.String(),
		CurrentPage: st.CurrentPage,
		TotalPages:  st.TotalPages,
		CanPrevious: domviewer.CanPrevious(st),
		CanNext:     domviewer.CanNext(st),
	}
	if st.Err != nil {
		v.Error = st.Err.Error()
	}
	return v
}
