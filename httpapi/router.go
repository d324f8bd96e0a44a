// Package httpapi wires the REST surface: account endpoints, project
// membership and the technical endpoints. The realtime /ws endpoint is
// mounted here too but handled by the gateway package.
package httpapi

import (
	"log/slog"
	"net/http"

	"devroom/auth"
	"devroom/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Users     *UserHandlers
	Projects  *ProjectHandlers
	Tokens    *auth.TokenManager
	Monitor   *observability.Monitor
	WSHandler http.HandlerFunc
	Debug     bool
	Log       *slog.Logger
}

func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	authRequired := auth.Middleware(deps.Tokens)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", deps.Users.Register)
		r.Post("/login", deps.Users.Login)
		r.Post("/forgot-password", deps.Users.ForgotPassword)
		r.Post("/reset-password", deps.Users.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(authRequired)
			r.Get("/profile", deps.Users.Profile)
			r.Post("/logout", deps.Users.Logout)
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.Use(authRequired)
		r.Post("/create", deps.Projects.Create)
		r.Get("/all", deps.Projects.ListAll)
		r.Patch("/add-users", deps.Projects.AddUsers)
		r.Post("/remove-user", deps.Projects.RemoveUser)
		r.Get("/get-project/{projectId}", deps.Projects.Get)
	})

	r.Get("/ws", deps.WSHandler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if deps.Debug {
		r.Get("/debug/stats", func(w http.ResponseWriter, _ *http.Request) {
			stats, err := deps.Monitor.Collect()
			if err != nil {
				deps.Log.Error("Stats collection failed", "error", err)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"errors": "stats unavailable"})
				return
			}
			respondJSON(w, http.StatusOK, stats)
		})
	}

	return r
}
