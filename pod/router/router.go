package router

import (
	"net/http"

	"panda-gate/pod/app/controllers"
	"panda-gate/pod/app/middleware"
)

func New(auth *controllers.AuthController, users *controllers.UserController,
	admin *controllers.AdminController, notifications *controllers.NotificationController,
	tokens *controllers.TokenController, mw *middleware.Auth) http.Handler {

	mux := http.NewServeMux()

	// public
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	mux.HandleFunc("POST /auth/login", auth.Login)
	mux.HandleFunc("POST /auth/register", auth.Register)
	mux.HandleFunc("GET /auth/bootstrap", auth.BootstrapStatus)
	mux.HandleFunc("POST /auth/bootstrap", auth.Bootstrap)

	// authenticated
	mux.Handle("GET /users/me", mw.RequireAuth(http.HandlerFunc(users.Me)))
	mux.Handle("PUT /users/me/profile", mw.RequireAuth(http.HandlerFunc(users.UpdateProfile)))
	mux.Handle("GET /users/me/quota", mw.RequireAuth(http.HandlerFunc(users.Quota)))
	mux.Handle("GET /notifications", mw.RequireAuth(http.HandlerFunc(notifications.List)))
	mux.Handle("POST /notifications/{id}/read", mw.RequireAuth(http.HandlerFunc(notifications.MarkRead)))
	mux.Handle("DELETE /notifications/{id}", mw.RequireAuth(http.HandlerFunc(notifications.Delete)))
	mux.Handle("GET /tokens", mw.RequireAuth(http.HandlerFunc(tokens.List)))
	mux.Handle("POST /tokens", mw.RequireAuth(http.HandlerFunc(tokens.Create)))
	mux.Handle("DELETE /tokens/{id}", mw.RequireAuth(http.HandlerFunc(tokens.Delete)))

	// admin-only; role is re-read from the store, not the token
	mux.Handle("GET /admin/users", mw.RequireAdmin(http.HandlerFunc(admin.ListUsers)))
	mux.Handle("PUT /admin/users/{id}/role", mw.RequireAdmin(http.HandlerFunc(admin.ChangeRole)))
	mux.Handle("POST /admin/users/{id}/notifications", mw.RequireAdmin(http.HandlerFunc(admin.Notify)))

	return mux
}
