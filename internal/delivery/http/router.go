package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"secretsanta/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(roomController *controllers.RoomController) *http.ServeMux {
	mux := http.NewServeMux()

	// Rooms
	mux.HandleFunc("POST /rooms", roomController.CreateRoom)
	mux.HandleFunc("GET /rooms/{code}", roomController.GetRoomByCode)
	mux.HandleFunc("GET /rooms/{code}/participants/{name}/qr", roomController.ParticipantQR)

	// Reveal
	mux.HandleFunc("GET /reveal/creator/{key}", roomController.RevealByCreatorKey)
	mux.HandleFunc("GET /reveal/participant/{key}", roomController.RevealByParticipantKey)

	// Operational
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
