package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"panda-gate/bff/internal/middleware"
)

// NewRouter wires the BFF: logging and the access classifier run on
// every request; /api answers JSON envelopes, pages answer hydration
// payloads.
func NewRouter(h *Handler, access *middleware.Access) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(access.Classify)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// pages
	r.Get("/", h.Home)
	r.Get("/login", h.LoginPage)
	r.Get("/register", h.RegisterPage)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/admin", h.AdminPage)

	// api
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)
		r.Post("/auth/logout", h.Logout)
		r.Get("/bootstrap", h.BootstrapStatus)
		r.Post("/bootstrap", h.Bootstrap)

		r.Get("/me", h.Me)
		r.Put("/me/profile", h.UpdateProfile)
		r.Get("/me/quota", h.Quota)

		r.Get("/notifications", h.ListNotifications)
		r.Post("/notifications/{id}/read", h.MarkNotificationRead)
		r.Delete("/notifications/{id}", h.DeleteNotification)

		r.Get("/tokens", h.ListTokens)
		r.Post("/tokens", h.CreateToken)
		r.Delete("/tokens/{id}", h.DeleteToken)

		r.Get("/admin/users", h.AdminListUsers)
		r.Put("/admin/users/{id}/role", h.AdminChangeRole)
		r.Post("/admin/users/{id}/notifications", h.AdminNotify)
	})

	return r
}
