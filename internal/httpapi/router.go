package httpapi

import (
	"io"
	"log"
	"net/http"

	"exam-sheet/internal/sheet"
)

type RouterOptions struct {
	Logger      *log.Logger
	MaxLogBytes int
	Debug       bool
}

func NewRouter(s *sheet.Sheet, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	api := NewAPI(s, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/sheet", api.HandleSheet)
	mux.HandleFunc("/sheet/answers/{question}", api.HandleAnswer)
	mux.HandleFunc("/sheet/correctness/{question}", api.HandleCorrectness)
	mux.HandleFunc("/sheet/questions/increase", api.HandleIncreaseQuestions)
	mux.HandleFunc("/sheet/questions/decrease", api.HandleDecreaseQuestions)
	mux.HandleFunc("/sheet/options", api.HandleOptions)
	mux.HandleFunc("/sheet/export", api.HandleExport)

	return withRequestLogging(mux, logger, opts.MaxLogBytes, opts.Debug)
}
