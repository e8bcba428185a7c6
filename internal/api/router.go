package api

import (
	"net/http"

	"github.com/agloo/themer/internal/config"
	"github.com/agloo/themer/internal/service"
	"github.com/agloo/themer/internal/ws"
	"github.com/gorilla/websocket"
)

func NewRouter(
	cfg config.Config,
	hub *ws.Hub,
	schemeSvc *service.SchemeService,
	gradientSvc *service.GradientService,
) http.Handler {
	h := &Handler{
		cfg:         cfg,
		hub:         hub,
		schemeSvc:   schemeSvc,
		gradientSvc: gradientSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/v1/ws", h.WebSocket)
	mux.HandleFunc("/v1/mix", h.MixScheme)
	mux.HandleFunc("/v1/mix/image", h.MixImage)
	mux.HandleFunc("/v1/gradient", h.Gradient)
	mux.HandleFunc("/v1/schemes", h.Schemes)
	mux.HandleFunc("/v1/schemes/", h.SchemeByID)
	mux.HandleFunc("/v1/history", h.History)

	return limitBody(cfg.MaxUploadSizeBytes, mux)
}

func limitBody(maxSize int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
		next.ServeHTTP(w, r)
	})
}
