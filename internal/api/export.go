package api

import (
	"bytes"
	"encoding/csv"
	"sort"
	"time"

	"github.com/hireloop/hireloop/internal/assessment"
)

// ExportSubmissionsCSV renders submissions in long format, one row per
// answered question, for offline review of a job's pipeline.
func ExportSubmissionsCSV(subs []*assessment.Submission) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"submission_id", "candidate_id", "question_id", "value", "completed_at"})
	for _, sub := range subs {
		qids := make([]string, 0, len(sub.Responses))
		for qid := range sub.Responses {
			qids = append(qids, qid)
		}
		sort.Strings(qids)
		for _, qid := range qids {
			rec := []string{
				sub.ID,
				sub.CandidateID,
				qid,
				sub.Responses[qid].String(),
				sub.CompletedAt.Format(time.RFC3339),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportQuestionsCSV renders an assessment's question definitions for review:
// ids, placement, type, requiredness and configured options.
func ExportQuestionsCSV(a *assessment.Assessment) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"section_id", "section_title", "question_id", "position", "type", "required", "title", "options"})
	for _, sec := range a.Sections {
		for _, q := range sec.Questions {
			rec := []string{
				sec.ID,
				sec.Title,
				q.ID,
				itoa(q.Order),
				string(q.Type),
				boolStr(q.Required),
				q.Title,
				joinPipe(q.Options),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func joinPipe(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	out := make([]byte, 0, 16*len(ss))
	for i, s := range ss {
		if i > 0 {
			out = append(out, ' ', '|', ' ')
		}
		out = append(out, []byte(s)...)
	}
	return string(out)
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := false
	if i < 0 {
		neg = true
		i = -i
	}
	var b [20]byte
	bp := len(b)
	for i > 0 {
		bp--
		b[bp] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		bp--
		b[bp] = '-'
	}
	return string(b[bp:])
}
