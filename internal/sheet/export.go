package sheet

import (
	"encoding/json"
	"io"
)

const (
	ExportFilename = "respuestas_examen.json"

	ExportUnanswered   = "Sin respuesta"
	ExportCorrect      = "Sí"
	ExportIncorrect    = "No"
	ExportNotEvaluated = "No evaluada"
)

// ExportEntry is one row of the exported artifact.
type ExportEntry struct {
	Question    int    `json:"pregunta"`
	Answer      string `json:"respuesta"`
	Correctness string `json:"correcta"`
}

// Export lists every question from 1 to QuestionCount in ascending order, answered
// or not.
func Export(snapshot Snapshot) []ExportEntry {
	count := snapshot.QuestionCount
	if count < 0 {
		count = 0
	}

	entries := make([]ExportEntry, 0, count)
	for question := 1; question <= count; question++ {
		answer, ok := snapshot.Answers[question]
		if !ok || answer == "" {
			answer = ExportUnanswered
		}
		entries = append(entries, ExportEntry{
			Question:    question,
			Answer:      answer,
			Correctness: correctnessLabel(snapshot.Correctness, question),
		})
	}
	return entries
}

// WriteExport writes the export of snapshot as a JSON array indented by two spaces.
func WriteExport(w io.Writer, snapshot Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Export(snapshot))
}

func correctnessLabel(correctness map[int]bool, question int) string {
	isCorrect, ok := correctness[question]
	switch {
	case !ok:
		return ExportNotEvaluated
	case isCorrect:
		return ExportCorrect
	default:
		return ExportIncorrect
	}
}
