package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"fakenews-detector/services"
)

// DashboardHandler serves the analysis page. GET / is the idle state,
// POST /analyze recomputes everything from the submitted form.
type DashboardHandler struct {
	service   *services.AnalyzerService
	limiter   *services.RateLimiter
	maxUpload int64
}

func NewDashboardHandler(service *services.AnalyzerService, limiter *services.RateLimiter, maxUploadBytes int64) *DashboardHandler {
	return &DashboardHandler{
		service:   service,
		limiter:   limiter,
		maxUpload: maxUploadBytes,
	}
}

func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	render(w, http.StatusOK, pageData{})
}

func (h *DashboardHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if h.service.IsPaused.Load() {
		render(w, http.StatusServiceUnavailable, pageData{Warning: "Analysis is paused by the administrator. Try again later."})
		return
	}

	client := clientIP(r)
	if ok, info := h.limiter.Allow(r.Context(), client); !ok {
		render(w, http.StatusTooManyRequests, pageData{
			Warning: fmt.Sprintf("Too many requests: limit is %d analyses per minute.", info.Limit),
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Printf("[HANDLER] ⚠ bad form from %s: %v", client, err)
		render(w, http.StatusBadRequest, pageData{Error: "Could not read the submitted form: " + err.Error()})
		return
	}

	data := pageData{Text: r.FormValue("text")}

	upload, err := readUpload(r)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedUpload) {
			data.Warning = err.Error()
			render(w, http.StatusUnprocessableEntity, data)
			return
		}
		data.Error = err.Error()
		render(w, http.StatusBadRequest, data)
		return
	}

	text, err := services.ResolveInput(data.Text, upload)
	switch {
	case errors.Is(err, services.ErrEmptyInput):
		h.service.RecordEmptyInput()
		data.Warning = "Please provide text or upload a file."
		render(w, http.StatusUnprocessableEntity, data)
		return
	case err != nil:
		log.Printf("[HANDLER] ❌ upload from %s: %v", client, err)
		data.Error = err.Error()
		render(w, http.StatusBadRequest, data)
		return
	}

	result, err := h.service.Analyze(text)
	if err != nil {
		log.Printf("[HANDLER] ❌ analysis failed: %v", err)
		data.Error = "Analysis failed: " + err.Error()
		render(w, http.StatusInternalServerError, data)
		return
	}

	if tab, ok := upload.(*services.TabularUpload); ok {
		if preview, err := tab.Preview(); err == nil {
			result.Preview = preview
		}
	}

	data.Result = result
	render(w, http.StatusOK, data)
}

func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"features": h.service.NumFeatures(),
	})
}

// readUpload returns nil when the form carries no file.
func readUpload(r *http.Request) (services.Upload, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	log.Printf("[HANDLER] 📎 upload %s (%d bytes)", header.Filename, len(content))
	return services.NewUpload(header.Filename, content)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := dashboardTmpl.Execute(w, data); err != nil {
		log.Printf("[HANDLER] ⚠ render failed: %v", err)
	}
}
