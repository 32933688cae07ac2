package route

import (
	"net/http"
	"os"
	"path/filepath"

	"incidentserver/internal/config"
	"incidentserver/internal/handler"
	"incidentserver/internal/logger"
	"incidentserver/internal/metrics"
	"incidentserver/internal/middleware"
	"incidentserver/internal/service/incident"
	"incidentserver/internal/service/websocket"
)

// dynamicHTMLHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == "/" {
			path = "/index"
		}

		filePath := filepath.Join(staticDir, filepath.Clean("/"+path)+".html")

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// SetupRoutes registers the API, websocket, log and static endpoints and
// wraps the mux with request id, panic recovery and request observation.
func SetupRoutes(svc *incident.Service, hub *websocket.HubService, cfg *config.Config,
	logger *logger.Logger, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDirectory))))

	// Cameras
	mux.HandleFunc("GET /api/cameras", handler.ListCamerasHandler(svc, logger))
	mux.HandleFunc("POST /api/cameras", handler.CreateCameraHandler(svc, logger))
	mux.HandleFunc("GET /api/cameras/{id}", handler.GetCameraHandler(svc, logger))

	// Incidents
	mux.HandleFunc("GET /api/incidents", handler.ListIncidentsHandler(svc, logger))
	mux.HandleFunc("POST /api/incidents", handler.CreateIncidentHandler(svc, logger))
	mux.HandleFunc("GET /api/incidents/{id}", handler.GetIncidentHandler(svc, logger))
	mux.HandleFunc("PATCH /api/incidents/{id}", handler.UpdateIncidentHandler(svc, logger))
	mux.HandleFunc("PATCH /api/incidents/{id}/resolve", handler.ResolveIncidentHandler(svc, logger))

	// Live incident events
	mux.HandleFunc("GET /api/events", handler.EventsWebsocketHandler(hub, logger))

	// Log endpoints
	mux.HandleFunc("GET /logs/{level}", handler.ShowLogsHandler(logger))
	mux.HandleFunc("POST /logs/{level}/clear", handler.ClearLogsHandler(logger))

	mux.HandleFunc("GET /healthz", handler.HealthHandler(logger))
	mux.Handle("GET /metrics", m.Handler())

	// Automatic HTML handler mapping for example: /timeline -> <static>/timeline.html
	mux.HandleFunc("/", dynamicHTMLHandler(cfg.StaticDirectory))

	return middleware.RequestID(middleware.Recover(logger, middleware.Observe(logger, m, mux)))
}
