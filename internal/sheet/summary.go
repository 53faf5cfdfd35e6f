package sheet

const (
	MarkCorrect      = "correct"
	MarkIncorrect    = "incorrect"
	MarkNotEvaluated = "not_evaluated"
)

type SummaryEntry struct {
	Question int    `json:"question"`
	Answer   string `json:"answer"`
	Mark     string `json:"mark"`
}

// Summary is the progress and scoring overview of a sheet.
type Summary struct {
	Answered  int `json:"answered"`
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	// Unevaluated is answers minus correctness flags. Flags recorded for unanswered
	// questions count against it, so it can be negative.
	Unevaluated int            `json:"unevaluated"`
	Entries     []SummaryEntry `json:"entries"`
}

func Summarize(snapshot Snapshot) Summary {
	summary := Summary{
		Answered:    len(snapshot.Answers),
		Total:       snapshot.QuestionCount,
		Unevaluated: len(snapshot.Answers) - len(snapshot.Correctness),
		Entries:     make([]SummaryEntry, 0, len(snapshot.Answers)),
	}

	for _, isCorrect := range snapshot.Correctness {
		if isCorrect {
			summary.Correct++
		} else {
			summary.Incorrect++
		}
	}

	for _, question := range snapshot.AnsweredQuestions() {
		mark := MarkNotEvaluated
		if isCorrect, ok := snapshot.Correctness[question]; ok {
			mark = MarkIncorrect
			if isCorrect {
				mark = MarkCorrect
			}
		}
		summary.Entries = append(summary.Entries, SummaryEntry{
			Question: question,
			Answer:   snapshot.Answers[question],
			Mark:     mark,
		})
	}

	return summary
}
