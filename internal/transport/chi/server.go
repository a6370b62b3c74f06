package chi

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/evalview/internal/domain"
	logpkg "github.com/kailas-cloud/evalview/internal/logger"
	"github.com/kailas-cloud/evalview/internal/storage/asset"
	healthuc "github.com/kailas-cloud/evalview/internal/usecase/health"
)

// ErrorCode is a machine-readable error kind in API responses.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeInvalidDirection ErrorCode = "invalid_direction"
	CodeDocumentNotFound ErrorCode = "document_not_found"
	CodeViewerNotFound   ErrorCode = "viewer_not_found"
	CodeAssetNotFound    ErrorCode = "asset_not_found"
	CodeNotInitialized   ErrorCode = "not_initialized"
	CodeUnavailable      ErrorCode = "unavailable"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status  healthuc.Status                 `json:"status"`
	Checks  map[string]healthuc.CheckResult `json:"checks"`
	Version string                          `json:"version"`
}

type filterRequest struct {
	DocID *string `json:"doc_id"`
}

type navigateRequest struct {
	Direction int `json:"direction"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the interactive report and its control API.
type Server struct {
	session       ReportSession
	assets        AssetFetcher
	health        *healthuc.Service
	version       string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server for the report.
func NewServer(
	session ReportSession,
	assets AssetFetcher,
	health *healthuc.Service,
	version string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		session: session,
		assets:  assets,
		health:  health,
		version: version,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidDirection, http.StatusBadRequest, CodeInvalidDirection),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrViewerNotFound, http.StatusNotFound, CodeViewerNotFound),
		sentinelHandler(domain.ErrAssetNotFound, http.StatusNotFound, CodeAssetNotFound),
		sentinelHandler(domain.ErrNotInitialized, http.StatusServiceUnavailable, CodeNotInitialized),
		sentinelHandler(domain.ErrSessionClosed, http.StatusServiceUnavailable, CodeUnavailable),
	}
	return s
}

// Routes registers the report routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Page)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get(asset.URLPrefix+"*", s.File)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.GetState)
		r.Post("/filter", s.SelectDocument)
		r.Post("/filter/reset", s.ResetFilter)
		r.Post("/gallery/toggle", s.ToggleGallery)
		r.Post("/viewers/{docID}/navigate", s.Navigate)
	})
}

// Page handles GET /.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	html, err := s.session.Render(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// GetState handles GET /api/state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, r)
}

// SelectDocument handles POST /api/filter. A null doc_id restores the aggregate view.
func (s *Server) SelectDocument(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.session.SelectDocument(r.Context(), req.DocID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeState(w, r)
}

// ResetFilter handles POST /api/filter/reset.
func (s *Server) ResetFilter(w http.ResponseWriter, r *http.Request) {
	if err := s.session.SelectDocument(r.Context(), nil); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeState(w, r)
}

// ToggleGallery handles POST /api/gallery/toggle.
func (s *Server) ToggleGallery(w http.ResponseWriter, r *http.Request) {
	if err := s.session.ToggleGallery(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeState(w, r)
}

// Navigate handles POST /api/viewers/{docID}/navigate.
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	docID, err := url.PathUnescape(chi.URLParam(r, "docID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid document id")
		return
	}
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.session.Navigate(r.Context(), docID, req.Direction); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeState(w, r)
}

// File handles GET /files/*.
func (s *Server) File(w http.ResponseWriter, r *http.Request) {
	rest, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || rest == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid asset path")
		return
	}
	p := asset.FromURL(rest)
	if err := s.session.GalleryAsset(r.Context(), p); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	data, err := s.assets.Fetch(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ct := mime.TypeByExtension(path.Ext(p))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  report.Status,
		Checks:  report.Checks,
		Version: s.version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request) {
	st, err := s.session.State(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidDirection,
		domain.ErrDocumentNotFound,
		domain.ErrViewerNotFound,
		domain.ErrAssetNotFound,
		domain.ErrNotInitialized,
		domain.ErrSessionClosed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
