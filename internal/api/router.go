package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hireloop/hireloop/internal/middleware"
)

// Router wires the request/response boundary the assessment engine is
// consumed through: assessment load/save by job id, attempt submission, and
// the job collaborator lookups.
type Router struct {
	store  Store
	signer *middleware.TokenSigner
}

func NewRouter(store Store, signer *middleware.TokenSigner) *Router {
	return &Router{store: store, signer: signer}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)
	r.Use(middleware.SecureHeaders)
	r.Use(rt.signer.WithAttempt)

	r.Get("/health", rt.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoStore)

		r.Get("/jobs", rt.handleListJobs)
		r.Get("/jobs/{jobID}", rt.handleGetJob)

		r.Post("/attempts", rt.handleCreateAttempt)

		r.Route("/assessments/{jobID}", func(r chi.Router) {
			r.Get("/", rt.handleGetAssessment)
			r.Put("/", rt.handlePutAssessment)
			r.Post("/submit", rt.handleSubmit)
			r.Get("/submissions", rt.handleListSubmissions)
			r.Get("/questions.csv", rt.handleExportQuestions)
		})
	})

	return r
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{"ok": true, "name": "Hireloop API"})
}
