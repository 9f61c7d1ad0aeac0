package handlers

import "net/http"

func NewRouter(dashboard *DashboardHandler, admin *AdminHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", dashboard.Index)
	mux.HandleFunc("/analyze", dashboard.Analyze)
	mux.HandleFunc("/api/health", dashboard.Health)

	mux.HandleFunc("/api/admin/stats", admin.AuthMiddleware(admin.GetStats))
	mux.HandleFunc("/api/admin/status", admin.AuthMiddleware(admin.GetStatus))
	mux.HandleFunc("/api/admin/pause", admin.AuthMiddleware(admin.Pause))
	mux.HandleFunc("/api/admin/resume", admin.AuthMiddleware(admin.Resume))
	mux.HandleFunc("/api/admin/logs", admin.StreamLogs)

	return mux
}
