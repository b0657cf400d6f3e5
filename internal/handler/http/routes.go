package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/logout", h.logout)
		r.Get("/api/share/{shareID}", h.sharedCard)
	})

	// public card view; a present token identifies the owner so their own
	// reads are not counted as visits
	router.Group(func(r chi.Router) {
		r.Use(h.authOptional)
		r.Get("/api/cards/{id}", h.card)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/user/me", h.profile)
		r.Patch("/api/user/me", h.updateProfile)
		r.Post("/api/user/password", h.changePassword)
		r.Get("/api/user/logins", h.loginHistory)
		r.Get("/api/users", h.listUsers)

		r.Post("/api/cards", h.createCard)
		r.Get("/api/cards", h.listCards)
		r.Patch("/api/cards/{id}", h.updateCard)
		r.Delete("/api/cards/{id}", h.deleteCard)
		r.Post("/api/cards/{id}/share", h.regenerateShareCode)
	})

	return router
}
