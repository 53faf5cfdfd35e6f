package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"exam-sheet/internal/sheet"
)

func (a *API) HandleSheet(w http.ResponseWriter, r *http.Request) {
	if a.sheet == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sheet unavailable"})
		return
	}

	switch r.Method {
	case http.MethodGet:
	case http.MethodDelete:
		a.sheet.ClearAll()
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodDelete)
		return
	}

	a.writeSheet(w, http.StatusOK)
}

func (a *API) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	if a.sheet == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sheet unavailable"})
		return
	}
	if r.Method != http.MethodPut && r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, http.MethodPut, http.MethodDelete)
		return
	}

	question, err := parseQuestion(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if r.Method == http.MethodDelete {
		a.sheet.ClearAnswer(question)
		a.writeSheet(w, http.StatusOK)
		return
	}

	var request answerRequest
	if err := decodeBody(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := a.sheet.SetAnswer(question, request.Option); err != nil {
		writeSheetError(w, err)
		return
	}

	a.writeSheet(w, http.StatusOK)
}

func (a *API) HandleCorrectness(w http.ResponseWriter, r *http.Request) {
	if a.sheet == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sheet unavailable"})
		return
	}
	if r.Method != http.MethodPut && r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, http.MethodPut, http.MethodDelete)
		return
	}

	question, err := parseQuestion(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if r.Method == http.MethodDelete {
		a.sheet.ClearCorrectness(question)
		a.writeSheet(w, http.StatusOK)
		return
	}

	var request correctnessRequest
	if err := decodeBody(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if request.Correct == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "correct is required"})
		return
	}
	if err := a.sheet.SetCorrectness(question, *request.Correct); err != nil {
		writeSheetError(w, err)
		return
	}

	a.writeSheet(w, http.StatusOK)
}

func (a *API) HandleIncreaseQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if a.sheet == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sheet unavailable"})
		return
	}

	a.sheet.IncreaseQuestionCount()
	a.writeSheet(w, http.StatusOK)
}

func (a *API) HandleDecreaseQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if a.sheet == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sheet unavailable"})
		return
	}

	a.sheet.DecreaseQuestionCount()
	a.writeSheet(w, http.StatusOK)
}

func (a *API) HandleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, http.MethodPut)
		return
	}
	if a.sheet == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sheet unavailable"})
		return
	}

	var request optionsRequest
	if err := decodeBody(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := a.sheet.SetOptionsPerQuestion(request.OptionsPerQuestion); err != nil {
		writeSheetError(w, err)
		return
	}

	a.writeSheet(w, http.StatusOK)
}

func (a *API) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if a.sheet == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sheet unavailable"})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+sheet.ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if err := sheet.WriteExport(w, a.sheet.Snapshot()); err != nil {
		a.logger.Printf("export write failed: %v", err)
	}
}

func (a *API) writeSheet(w http.ResponseWriter, statusCode int) {
	snapshot := a.sheet.Snapshot()
	writeJSON(w, statusCode, sheetResponse{
		QuestionCount:      snapshot.QuestionCount,
		OptionsPerQuestion: snapshot.OptionsPerQuestion,
		Options:            sheet.Alphabet(snapshot.OptionsPerQuestion),
		Answers:            snapshot.Answers,
		Correctness:        snapshot.Correctness,
		Summary:            sheet.Summarize(snapshot),
	})
}

func decodeBody(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func parseQuestion(r *http.Request) (int, error) {
	question, err := strconv.Atoi(r.PathValue("question"))
	if err != nil || question <= 0 {
		return 0, errInvalidQuestion
	}
	return question, nil
}
