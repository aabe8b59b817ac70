package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dferrandiz/tasklist-be/internal/api/handlers"
	"github.com/dferrandiz/tasklist-be/internal/auth"
	"github.com/dferrandiz/tasklist-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(userService services.UserServiceProvider, taskListService services.TaskListServiceProvider, todoService services.ToDoServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	taskListHandler := handlers.NewTaskListHandler(taskListService)
	todoHandler := handlers.NewToDoHandler(todoService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", userHandler.Signup)
			r.Post("/signin", userHandler.Signin)
		})

		// Everything below requires a resolved caller identity
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware())

			r.Get("/users/me", userHandler.GetMe)

			r.Route("/tasklists", func(r chi.Router) {
				r.Get("/", taskListHandler.GetMine)
				r.Post("/", taskListHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskListHandler.Get)
					r.Put("/", taskListHandler.Update)
					r.Delete("/", taskListHandler.Delete)
					r.Post("/members", taskListHandler.AddMember)
					r.Post("/todos", todoHandler.Create)
				})
			})

			r.Route("/todos/{id}", func(r chi.Router) {
				r.Put("/", todoHandler.Update)
				r.Delete("/", todoHandler.Delete)
			})
		})
	})

	return r
}
