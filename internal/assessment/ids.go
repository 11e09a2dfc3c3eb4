package assessment

import (
	"strings"

	"github.com/google/uuid"
)

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

func newAssessmentID(jobID string) string { return "assessment-" + jobID + "-" + shortID(8) }
func newSectionID() string                { return "section-" + shortID(8) }
func newQuestionID() string               { return "question-" + shortID(8) }
func newSubmissionID() string             { return "response-" + shortID(12) }
