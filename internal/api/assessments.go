package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hireloop/hireloop/internal/assessment"
	"github.com/hireloop/hireloop/internal/middleware"
)

// GET /api/assessments/{jobID}
func (rt *Router) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	a, err := rt.store.GetAssessmentByJob(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if a == nil {
		writeMessage(w, http.StatusNotFound, "no assessment for job "+jobID)
		return
	}
	writeData(w, http.StatusOK, a)
}

// PUT /api/assessments/{jobID} upserts the full definition and returns the
// store's canonical copy.
func (rt *Router) handlePutAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	var a assessment.Assessment
	if !decodeBody(w, r, &a) {
		return
	}
	saved, err := rt.store.PutAssessmentByJob(r.Context(), jobID, &a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, saved)
}

type submitRequest struct {
	CandidateID string                      `json:"candidateId"`
	Responses   map[string]assessment.Value `json:"responses"`
}

// POST /api/assessments/{jobID}/submit
//
// Replays the collected answers through a fresh session against the stored
// definition, so the engine's own gating decides whether the submission
// stands. Invalid attempts come back 422 with the per-question errors.
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := rt.store.GetAssessmentByJob(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if a == nil {
		writeMessage(w, http.StatusNotFound, "no assessment for job "+jobID)
		return
	}

	candidateID := req.CandidateID
	if claims, ok := middleware.AttemptFromContext(r.Context()); ok {
		candidateID = claims.CandidateID
	}

	sess := assessment.NewSession(a, candidateID)
	for questionID, v := range req.Responses {
		sess.SetResponse(questionID, v)
	}

	sub, err := sess.Submit(r.Context(), rt.store)
	if err == assessment.ErrValidationFailed {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":      "validation failed",
			"errors":       sess.AllErrors(),
			"firstInvalid": sess.FirstInvalidQuestion(),
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, sub)
}

// GET /api/assessments/{jobID}/submissions[?format=csv]
func (rt *Router) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	subs, err := rt.store.ListSubmissionsByJob(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		b, err := ExportSubmissionsCSV(subs)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=submissions.csv")
		_, _ = w.Write(b)
		return
	}
	writeData(w, http.StatusOK, subs)
}

// GET /api/assessments/{jobID}/questions.csv
func (rt *Router) handleExportQuestions(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	a, err := rt.store.GetAssessmentByJob(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if a == nil {
		writeMessage(w, http.StatusNotFound, "no assessment for job "+jobID)
		return
	}
	b, err := ExportQuestionsCSV(a)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=questions.csv")
	_, _ = w.Write(b)
}
