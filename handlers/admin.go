package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"fakenews-detector/config"
	"fakenews-detector/logger"
	"fakenews-detector/services"
)

type AdminHandler struct {
	cfg      *config.Config
	analyzer *services.AnalyzerService
}

func NewAdminHandler(cfg *config.Config, analyzer *services.AnalyzerService) *AdminHandler {
	return &AdminHandler{
		cfg:      cfg,
		analyzer: analyzer,
	}
}

func (h *AdminHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.analyzer.IsPaused.Store(true)
	log.Println("[ADMIN] ⏸ analysis paused by administrator")
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.analyzer.IsPaused.Store(false)
	log.Println("[ADMIN] ▶ analysis resumed by administrator")
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"is_paused": h.analyzer.IsPaused.Load(),
	})
}

type AdminStats struct {
	services.AnalyzerStats
	LogSubscribers int `json:"log_subscribers"`
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AdminStats{
		AnalyzerStats:  h.analyzer.Stats(),
		LogSubscribers: logger.Instance.Subscribers(),
	})
}

// AuthMiddleware checks the X-Admin-Token header. With no ADMIN_TOKEN
// configured every admin request is rejected.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.validToken(r.Header.Get("X-Admin-Token")) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) validToken(token string) bool {
	if h.cfg.AdminToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.AdminToken)) == 1
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamLogs pushes every log line to an admin websocket. Browsers cannot set
// headers on websocket requests, so the token comes from the query string.
func (h *AdminHandler) StreamLogs(w http.ResponseWriter, r *http.Request) {
	if !h.validToken(r.URL.Query().Get("token")) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	logsChan := logger.Instance.Subscribe()
	defer logger.Instance.Unsubscribe(logsChan)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ADMIN] WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(done)
				return
			}
		}
	}()

	for {
		select {
		case msg := <-logsChan:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
