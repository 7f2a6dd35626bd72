// Package devserver is a local stand-in for the heartchat backend: it speaks
// the same wire protocol the client consumes, with scripted or model-backed
// replies and stubbed therapist matching.
package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nuanxinlab/heartchat-go/internal/middleware"
	"github.com/nuanxinlab/heartchat-go/internal/model/therapist"
	"github.com/nuanxinlab/heartchat-go/internal/service/reply"
	"github.com/nuanxinlab/heartchat-go/internal/service/session"
)

// NewRouter wires the dev server routes to core services.
func NewRouter(therapists therapist.Store, sessions *session.Service, replies *reply.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	handler := New(therapists, sessions, replies)

	r.Route("/api", func(api chi.Router) {
		api.Get("/therapists", handler.handleListTherapists)
		api.Get("/therapists/{therapistID}", handler.handleGetTherapist)
		api.Post("/chat/turn", handler.handleTurn)
	})

	return r
}
