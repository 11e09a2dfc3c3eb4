package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type attemptRequest struct {
	CandidateID string `json:"candidateId"`
	JobID       string `json:"jobId"`
}

type attemptResponse struct {
	Token       string    `json:"token"`
	CandidateID string    `json:"candidateId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// POST /api/attempts issues a signed token for one candidate attempt. A
// missing candidate id gets a generated one so anonymous candidates can
// still take an assessment.
func (rt *Router) handleCreateAttempt(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	candidateID := strings.TrimSpace(req.CandidateID)
	if candidateID == "" {
		candidateID = "candidate-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	}
	token, exp, err := rt.signer.Sign(candidateID, req.JobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, attemptResponse{Token: token, CandidateID: candidateID, ExpiresAt: exp})
}
