package api

import (
	"context"
	"fmt"
	"time"

	"github.com/hireloop/hireloop/internal/assessment"
)

var seedJobTitles = []string{
	"Senior Frontend Developer",
	"Backend Engineer",
	"Product Manager",
	"UX/UI Designer",
	"DevOps Engineer",
}

// Seed populates the store with sample jobs and an assessment per job so a
// fresh deployment has something to click through. Writing is idempotent
// since both record kinds upsert by id.
func Seed(ctx context.Context, st Store) error {
	now := time.Now().UTC()
	for i, title := range seedJobTitles {
		jobID := fmt.Sprintf("job-%d", i+1)
		job := &assessment.Job{
			ID:        jobID,
			Title:     title,
			Status:    "active",
			Location:  "Remote",
			CreatedAt: now,
		}
		if err := st.PutJob(ctx, job); err != nil {
			return err
		}
		if _, err := st.PutAssessmentByJob(ctx, jobID, seedAssessment(jobID, title, now)); err != nil {
			return err
		}
	}
	return nil
}

func seedAssessment(jobID, jobTitle string, now time.Time) *assessment.Assessment {
	return &assessment.Assessment{
		ID:          "assessment-" + jobID,
		JobID:       jobID,
		Title:       jobTitle + " Assessment",
		Description: "Please complete this assessment to help us evaluate your fit for this role.",
		Sections: []assessment.Section{
			{
				ID:          "section-1-" + jobID,
				Title:       "Technical Skills",
				Description: "Questions about your technical background and experience.",
				Order:       0,
				Questions: []assessment.Question{
					{
						ID:       "q1-" + jobID,
						Type:     assessment.TypeSingleChoice,
						Title:    "How many years of experience do you have in your field?",
						Required: true,
						Options:  []string{"0-1 years", "1-3 years", "3-5 years", "5+ years"},
						Order:    0,
					},
					{
						ID:       "q2-" + jobID,
						Type:     assessment.TypeMultiChoice,
						Title:    "Which technologies are you most comfortable with?",
						Required: true,
						Options:  []string{"JavaScript", "Python", "React", "Node.js", "AWS", "Docker"},
						Order:    1,
					},
					{
						ID:       "q3-" + jobID,
						Type:     assessment.TypeLongText,
						Title:    "Describe a challenging project you worked on recently.",
						Required: true,
						Validation: []assessment.ValidationRule{
							{Type: assessment.RuleMinLength, Value: 100, Message: "Please provide at least 100 characters"},
						},
						Order: 2,
					},
				},
			},
			{
				ID:          "section-2-" + jobID,
				Title:       "Background & Motivation",
				Description: "Tell us about yourself and your career goals.",
				Order:       1,
				Questions: []assessment.Question{
					{
						ID:       "q4-" + jobID,
						Type:     assessment.TypeShortText,
						Title:    "What interests you most about this role?",
						Required: true,
						Validation: []assessment.ValidationRule{
							{Type: assessment.RuleMaxLength, Value: 500, Message: "Please keep under 500 characters"},
						},
						Order: 0,
					},
					{
						ID:       "q5-" + jobID,
						Type:     assessment.TypeNumeric,
						Title:    "What are your salary expectations? (USD)",
						Required: false,
						Validation: []assessment.ValidationRule{
							{Type: assessment.RuleMinValue, Value: 30000, Message: "Minimum salary is $30,000"},
							{Type: assessment.RuleMaxValue, Value: 500000, Message: "Maximum salary is $500,000"},
						},
						Order: 1,
					},
				},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
