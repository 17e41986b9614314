package service

import (
	"ai_hub_backend/internal/model"
	"ai_hub_backend/internal/repository"
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"
)

type ExportService struct {
	Subs *repository.SubmissionRepository
}

func NewExportService(subs *repository.SubmissionRepository) *ExportService {
	return &ExportService{Subs: subs}
}

// CSV renders every stored submission as a CSV document. Returns the row count
// so the controller can answer with an empty-state message instead of a file.
func (s *ExportService) CSV() ([]byte, int, error) {
	subs, err := s.Subs.ListAll()
	if err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"ID", "Name", "Email", "Department", "Module", "Score", "Total", "Percent", "Time Taken (s)", "Feedback", "Submitted At"}
	if err := w.Write(header); err != nil {
		return nil, 0, err
	}
	for i := range subs {
		if err := w.Write(csvRow(&subs[i])); err != nil {
			return nil, 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(subs), nil
}

func csvRow(sub *model.QuizSubmission) []string {
	return []string{
		strconv.FormatUint(uint64(sub.ID), 10),
		sub.Name,
		sub.Email,
		sub.Department,
		sub.ModuleName,
		strconv.Itoa(sub.Score),
		strconv.Itoa(sub.TotalQuestions),
		fmt.Sprintf("%.1f", sub.Percent()),
		strconv.Itoa(sub.TimeTakenSeconds),
		sub.Feedback,
		sub.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

var resultsTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Quiz Results</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #1e40af; color: #fff; }
tr:nth-child(even) { background: #f3f4f6; }
</style>
</head>
<body>
<h1>Quiz Results</h1>
<p>{{len .}} submission(s)</p>
<table>
<tr><th>Name</th><th>Email</th><th>Department</th><th>Module</th><th>Score</th><th>Time (s)</th><th>Submitted</th></tr>
{{range .}}<tr>
<td>{{.Name}}</td>
<td>{{.Email}}</td>
<td>{{.Department}}</td>
<td>{{.ModuleName}}</td>
<td>{{.Score}}/{{.TotalQuestions}}</td>
<td>{{.TimeTakenSeconds}}</td>
<td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
</tr>{{end}}
</table>
</body>
</html>`))

// HTMLView renders the same data as a browsable table.
func (s *ExportService) HTMLView() ([]byte, int, error) {
	subs, err := s.Subs.ListAll()
	if err != nil {
		return nil, 0, err
	}
	var buf bytes.Buffer
	if err := resultsTemplate.Execute(&buf, subs); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(subs), nil
}
