package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"orcafacil/go_backend/internal/app/config"
	"orcafacil/go_backend/internal/app/http/handlers"
	"orcafacil/go_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handlers, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.WorkspaceAuth(h.Workspaces))

			r.Get("/session", h.Session)
			r.Post("/auth/logout", h.Logout)
			r.Post("/back", h.Back)

			r.Get("/catalog", h.ListCatalog)
			r.Post("/catalog", h.CreateCatalogItem)
			r.Put("/catalog/{id}", h.UpdateCatalogItem)
			r.Delete("/catalog/{id}", h.DeleteCatalogItem)

			r.Get("/provider", h.GetProvider)
			r.Put("/provider", h.SaveProvider)

			r.Get("/quotes", h.ListQuotes)
			r.Post("/quotes", h.NewQuote)
			r.Route("/quotes/{id}", func(r chi.Router) {
				r.Get("/", h.OpenQuote)
				r.Post("/edit", h.EditQuote)
				r.Post("/delete", h.RequestDelete)
				r.Post("/delete/confirm", h.ConfirmDelete)
				r.Post("/delete/cancel", h.CancelDelete)
				r.Get("/share", h.ShareText)
				r.Get("/share/whatsapp", h.WhatsApp)
				r.Get("/document", h.Document)
			})

			r.Route("/editor", func(r chi.Router) {
				r.Get("/", h.Draft)
				r.Patch("/customer", h.UpdateCustomer)
				r.Put("/notes", h.SetNotes)
				r.Post("/notes/suggest", h.SuggestNotes)
				r.Post("/items", h.AddItem)
				r.Patch("/items/{index}", h.UpdateItem)
				r.Delete("/items/{index}", h.RemoveItem)
				r.Post("/save", h.Save)
				r.Post("/cancel", h.Back)
			})
		})
	})

	return r
}
