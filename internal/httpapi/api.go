package httpapi

import (
	"io"
	"log"

	"exam-sheet/internal/sheet"
)

type API struct {
	sheet  *sheet.Sheet
	logger *log.Logger
}

func NewAPI(s *sheet.Sheet, logger *log.Logger) *API {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &API{
		sheet:  s,
		logger: logger,
	}
}
