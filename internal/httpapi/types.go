package httpapi

import "exam-sheet/internal/sheet"

type sheetResponse struct {
	QuestionCount      int            `json:"question_count"`
	OptionsPerQuestion int            `json:"options_per_question"`
	Options            []string       `json:"options"`
	Answers            map[int]string `json:"answers"`
	Correctness        map[int]bool   `json:"correctness"`
	Summary            sheet.Summary  `json:"summary"`
}

type answerRequest struct {
	Option string `json:"option"`
}

type correctnessRequest struct {
	Correct *bool `json:"correct"`
}

type optionsRequest struct {
	OptionsPerQuestion int `json:"options_per_question"`
}

type errorResponse struct {
	Error string `json:"error"`
}
