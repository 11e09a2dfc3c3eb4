package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GET /api/jobs
func (rt *Router) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := rt.store.ListJobs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, jobs)
}

// GET /api/jobs/{jobID}
func (rt *Router) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	job, err := rt.store.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if job == nil {
		writeMessage(w, http.StatusNotFound, "job not found")
		return
	}
	writeData(w, http.StatusOK, job)
}
