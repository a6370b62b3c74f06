// Package viewer keeps one paginated viewer per gallery document.
//
// A Registry is owned by a single event loop: every exported method must be
// called on that loop. Decoding and painting run on their own goroutines and
// hand their results back through the Dispatcher, so viewer state is only ever
// touched by the loop.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/kailas-cloud/evalview/internal/domain"
	domviewer "github.com/kailas-cloud/evalview/internal/domain/viewer"
)

const (
	defaultMaxWidth   = 800
	defaultScaleCap   = 1.5
	defaultMaxDecodes = 4
)

// entry pins a viewer to the gallery build that created it.
type entry struct {
	state domviewer.State
	gen   uint64
}

// Registry maps doc_id to viewer state.
type Registry struct {
	decoder  Decoder
	painter  Painter
	display  Display
	dispatch Dispatcher
	logger   *zap.Logger

	maxWidth float64
	scaleCap float64
	decodes  *semaphore.Weighted

	entries map[string]*entry
	gen     uint64

	transitions    *prometheus.CounterVec
	staleRenders   prometheus.Counter
	renderDuration prometheus.Observer
}

// New creates an empty registry.
func New(decoder Decoder, painter Painter, display Display, dispatch Dispatcher, logger *zap.Logger) *Registry {
	return &Registry{
		decoder:  decoder,
		painter:  painter,
		display:  display,
		dispatch: dispatch,
		logger:   logger,
		maxWidth: defaultMaxWidth,
		scaleCap: defaultScaleCap,
		decodes:  semaphore.NewWeighted(defaultMaxDecodes),
		entries:  make(map[string]*entry),
	}
}

// WithLayout configures the page width budget and the upscale cap.
func (r *Registry) WithLayout(maxWidth, scaleCap float64) *Registry {
	if maxWidth > 0 {
		r.maxWidth = maxWidth
	}
	if scaleCap > 0 {
		r.scaleCap = scaleCap
	}
	return r
}

// WithMaxDecodes bounds how many assets are decoded at the same time.
func (r *Registry) WithMaxDecodes(n int64) *Registry {
	if n > 0 {
		r.decodes = semaphore.NewWeighted(n)
	}
	return r
}

// WithMetrics attaches Prometheus instruments. Any of them may be nil.
func (r *Registry) WithMetrics(
	transitions *prometheus.CounterVec,
	staleRenders prometheus.Counter,
	renderDuration prometheus.Observer,
) *Registry {
	r.transitions = transitions
	r.staleRenders = staleRenders
	r.renderDuration = renderDuration
	return r
}

// Rebuild discards every viewer and opens one per paginated entry of files.
// Static image entries get no viewer.
func (r *Registry) Rebuild(ctx context.Context, files map[string]string) {
	r.gen++
	r.entries = make(map[string]*entry)

	ids := make([]string, 0, len(files))
	for id, path := range files {
		if domviewer.IsPaginated(path) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		r.open(ctx, id, files[id])
	}
}

// Navigate moves a viewer one page. Out-of-range moves and moves on a viewer that
// is not ready are ignored.
func (r *Registry) Navigate(ctx context.Context, docID string, direction int) error {
	if direction != domviewer.Previous && direction != domviewer.Next {
		return fmt.Errorf("direction %d: %w", direction, domain.ErrInvalidDirection)
	}
	e, ok := r.entries[docID]
	if !ok {
		return fmt.Errorf("viewer %q: %w", docID, domain.ErrViewerNotFound)
	}

	next, moved := domviewer.Navigate(e.state, direction)
	if !moved {
		return nil
	}
	e.state = next
	r.count("navigated")
	r.display.ShowNavigation(next)
	r.render(ctx, docID, e)
	return nil
}

// State returns the viewer of docID.
func (r *Registry) State(docID string) (domviewer.State, bool) {
	e, ok := r.entries[docID]
	if !ok {
		return domviewer.State{}, false
	}
	return e.state, true
}

// States returns every viewer ordered by doc_id.
func (r *Registry) States() []domviewer.State {
	out := make([]domviewer.State, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.state)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocID < out[j].DocID })
	return out
}

func (r *Registry) open(ctx context.Context, docID, path string) {
	e := &entry{state: domviewer.Loading(docID, path), gen: r.gen}
	r.entries[docID] = e
	r.count(domviewer.PhaseLoading.String())
	r.display.ShowLoading(docID)

	gen := r.gen
	go func() {
		doc, err := r.decode(ctx, path)
		r.dispatch.Post(func() { r.opened(ctx, docID, gen, doc, err) })
	}()
}

func (r *Registry) decode(ctx context.Context, path string) (domviewer.Document, error) {
	if err := r.decodes.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for decode slot: %w", err)
	}
	defer r.decodes.Release(1)
	return r.decoder.Decode(ctx, path)
}

func (r *Registry) opened(ctx context.Context, docID string, gen uint64, doc domviewer.Document, err error) {
	e, ok := r.current(docID, gen)
	if !ok {
		return
	}

	if err != nil {
		e.state = domviewer.OpenFailed(e.state, err)
	} else {
		e.state = domviewer.Opened(e.state, doc)
	}
	r.count(e.state.Phase.String())

	if e.state.Phase == domviewer.PhaseFailed {
		r.logger.Warn("Failed to open document",
			zap.String("doc_id", docID),
			zap.String("path", e.state.Path),
			zap.Error(e.state.Err),
		)
		r.display.ShowError(docID)
		return
	}
	r.display.ShowNavigation(e.state)
	r.render(ctx, docID, e)
}

func (r *Registry) render(ctx context.Context, docID string, e *entry) {
	s := e.state
	scale := domviewer.Scale(r.maxWidth, s.Handle.PageWidth(s.CurrentPage), r.scaleCap)
	gen, seq := e.gen, s.Seq

	go func() {
		start := time.Now()
		res, err := r.painter.Paint(ctx, s.Handle, s.CurrentPage, scale)
		elapsed := time.Since(start)
		r.dispatch.Post(func() { r.rendered(docID, gen, seq, res, err, elapsed) })
	}()
}

func (r *Registry) rendered(docID string, gen, seq uint64, res Render, err error, elapsed time.Duration) {
	e, ok := r.current(docID, gen)
	if !ok {
		return
	}
	if !domviewer.IsCurrent(e.state, seq) {
		if r.staleRenders != nil {
			r.staleRenders.Inc()
		}
		return
	}
	if r.renderDuration != nil {
		r.renderDuration.Observe(elapsed.Seconds())
	}

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			r.logger.Warn("Failed to render page",
				zap.String("doc_id", docID),
				zap.Int("page", e.state.CurrentPage),
				zap.Error(err),
			)
		}
		r.display.ShowError(docID)
		return
	}
	r.display.ShowPage(e.state, res)
}

// current returns the entry of docID if it still belongs to gallery build gen.
func (r *Registry) current(docID string, gen uint64) (*entry, bool) {
	e, ok := r.entries[docID]
	if !ok || e.gen != gen {
		return nil, false
	}
	return e, true
}

func (r *Registry) count(phase string) {
	if r.transitions != nil {
		r.transitions.WithLabelValues(phase).Inc()
	}
}
