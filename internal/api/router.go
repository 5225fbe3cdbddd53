package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cumpas/cumpas-sync/internal/api/handlers"
	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/logger"
	"github.com/cumpas/cumpas-sync/internal/metrics"
	ratelimit "github.com/cumpas/cumpas-sync/internal/middleware"
	"github.com/cumpas/cumpas-sync/internal/services"
	"github.com/cumpas/cumpas-sync/internal/websocket"
)

// Dependencies bundles everything the router wires into handlers.
type Dependencies struct {
	Users     services.UserServiceProvider
	Events    services.EventServiceProvider
	Habits    services.HabitServiceProvider
	Finance   services.FinanceServiceProvider
	Study     services.StudyServiceProvider
	Goals     services.GoalServiceProvider
	Timetable services.TimetableServiceProvider
	Pomodoro  services.PomodoroServiceProvider
	Notes     services.QuickNoteServiceProvider

	Tokens        *auth.TokenIssuer
	Authenticator *auth.Authenticator
	Revoker       auth.Revoker
	Hub           *websocket.Hub
	AuthLimiter   *ratelimit.RateLimiter
	CORSOrigins   []string

	// TrustProxyHeaders mounts middleware.RealIP. Without it the rate
	// limiter keys on the socket peer, which clients cannot spoof.
	TrustProxyHeaders bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	if d.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(logger.Middleware())
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d.Users, d.Tokens, d.Revoker)
	eventHandler := handlers.NewEventHandler(d.Events)
	habitHandler := handlers.NewHabitHandler(d.Habits)
	financeHandler := handlers.NewFinanceHandler(d.Finance)
	studyHandler := handlers.NewStudyHandler(d.Study)
	goalHandler := handlers.NewGoalHandler(d.Goals)
	timetableHandler := handlers.NewTimetableHandler(d.Timetable)
	pomodoroHandler := handlers.NewPomodoroHandler(d.Pomodoro)
	noteHandler := handlers.NewQuickNoteHandler(d.Notes)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.CORSOrigins)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if d.AuthLimiter != nil {
					r.Use(d.AuthLimiter.Handler)
				}
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})
			r.Group(func(r chi.Router) {
				r.Use(d.Authenticator.Middleware)
				r.Get("/me", authHandler.GetMe)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// WebSocket connection endpoint
		r.With(d.Authenticator.WebSocketMiddleware).Get("/ws", wsHandler.Serve)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(d.Authenticator.Middleware)

			r.Get("/activity", eventHandler.GetRecent)

			r.Route("/habits", func(r chi.Router) {
				r.Get("/", habitHandler.GetAll)
				r.Post("/", habitHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", habitHandler.Update)
					r.Delete("/", habitHandler.Delete)
					r.Post("/complete", habitHandler.Complete)
				})
			})

			r.Route("/finance", func(r chi.Router) {
				r.Get("/summary", financeHandler.Summary)
				r.Route("/transactions", func(r chi.Router) {
					r.Get("/", financeHandler.GetAll)
					r.Post("/", financeHandler.Create)
					r.Patch("/{id}", financeHandler.Update)
					r.Delete("/{id}", financeHandler.Delete)
				})
			})

			r.Route("/study", func(r chi.Router) {
				r.Route("/notes", func(r chi.Router) {
					r.Get("/", studyHandler.GetNotes)
					r.Post("/", studyHandler.CreateNote)
					r.Patch("/{id}", studyHandler.UpdateNote)
					r.Delete("/{id}", studyHandler.DeleteNote)
				})
				r.Route("/tasks", func(r chi.Router) {
					r.Get("/", studyHandler.GetTasks)
					r.Post("/", studyHandler.CreateTask)
					r.Patch("/{id}", studyHandler.UpdateTask)
					r.Delete("/{id}", studyHandler.DeleteTask)
				})
			})

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", goalHandler.GetAll)
				r.Post("/", goalHandler.Create)
				r.Patch("/{id}", goalHandler.Update)
				r.Delete("/{id}", goalHandler.Delete)
			})

			r.Route("/timetable", func(r chi.Router) {
				r.Get("/", timetableHandler.GetAll)
				r.Post("/", timetableHandler.Create)
				r.Post("/attendance", timetableHandler.MarkAttendance)
				r.Get("/{id}/attendance", timetableHandler.GetAttendance)
				r.Patch("/{id}", timetableHandler.Update)
				r.Delete("/{id}", timetableHandler.Delete)
			})

			r.Route("/pomodoro", func(r chi.Router) {
				r.Get("/", pomodoroHandler.GetAll)
				r.Post("/", pomodoroHandler.Create)
				r.Get("/stats", pomodoroHandler.Stats)
				r.Patch("/{id}/complete", pomodoroHandler.Complete)
			})

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.GetAll)
				r.Post("/", noteHandler.Create)
				r.Patch("/{id}", noteHandler.Update)
				r.Delete("/{id}", noteHandler.Delete)
			})
		})
	})

	return r
}
