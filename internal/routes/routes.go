package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/moodlog-backend/internal/handlers"
)

// API groups the wired handlers so main only passes one value around.
type API struct {
	Auth    *handlers.AuthHandler
	Entries *handlers.EntryHandler
	Prompts *handlers.PromptHandler
	Uploads *handlers.UploadHandler
}

func SetupRoutes(r *chi.Mux, api *API) {
	// Account routes
	r.Post("/api/auth/signup", api.Auth.Signup)
	r.Post("/api/auth/signin", api.Auth.Signin)
	r.Post("/api/auth/signout", api.Auth.Signout)
	r.Get("/api/auth/me", api.Auth.Me)

	// Journal entry routes
	r.Post("/api/entries", api.Entries.Create)
	r.Get("/api/entries", api.Entries.List)
	r.Get("/api/entries/{id}", api.Entries.Get)
	r.Put("/api/entries/{id}", api.Entries.Update)
	r.Delete("/api/entries/{id}", api.Entries.Delete)

	// Prompt routes (no delete: prompts are deactivated, never removed)
	r.Post("/api/prompts", api.Prompts.Create)
	r.Get("/api/prompts", api.Prompts.List)
	r.Put("/api/prompts/{id}", api.Prompts.Update)

	// Attachment uploads
	r.Post("/api/upload", api.Uploads.Upload)
}
