package cli

import (
	"context"
	"io"

	"exam-sheet/internal/sheet"
	"exam-sheet/internal/sheetclient"
)

// Backend is the sheet the REPL operates on, either in-process or behind the
// HTTP service.
type Backend interface {
	Snapshot(ctx context.Context) (sheet.Snapshot, error)
	SetAnswer(ctx context.Context, question int, option string) error
	ClearAnswer(ctx context.Context, question int) error
	SetCorrectness(ctx context.Context, question int, isCorrect bool) error
	ClearCorrectness(ctx context.Context, question int) error
	IncreaseQuestionCount(ctx context.Context) error
	DecreaseQuestionCount(ctx context.Context) error
	SetOptionsPerQuestion(ctx context.Context, n int) error
	ClearAll(ctx context.Context) error
	Export(ctx context.Context, w io.Writer) error
}

var (
	_ Backend = (*LocalBackend)(nil)
	_ Backend = (*sheetclient.HTTPClient)(nil)
)

type LocalBackend struct {
	sheet *sheet.Sheet
}

func NewLocalBackend(s *sheet.Sheet) *LocalBackend {
	return &LocalBackend{sheet: s}
}

func (b *LocalBackend) Snapshot(context.Context) (sheet.Snapshot, error) {
	return b.sheet.Snapshot(), nil
}

func (b *LocalBackend) SetAnswer(_ context.Context, question int, option string) error {
	return b.sheet.SetAnswer(question, option)
}

func (b *LocalBackend) ClearAnswer(_ context.Context, question int) error {
	b.sheet.ClearAnswer(question)
	return nil
}

func (b *LocalBackend) SetCorrectness(_ context.Context, question int, isCorrect bool) error {
	return b.sheet.SetCorrectness(question, isCorrect)
}

func (b *LocalBackend) ClearCorrectness(_ context.Context, question int) error {
	b.sheet.ClearCorrectness(question)
	return nil
}

func (b *LocalBackend) IncreaseQuestionCount(context.Context) error {
	b.sheet.IncreaseQuestionCount()
	return nil
}

func (b *LocalBackend) DecreaseQuestionCount(context.Context) error {
	b.sheet.DecreaseQuestionCount()
	return nil
}

func (b *LocalBackend) SetOptionsPerQuestion(_ context.Context, n int) error {
	return b.sheet.SetOptionsPerQuestion(n)
}

func (b *LocalBackend) ClearAll(context.Context) error {
	b.sheet.ClearAll()
	return nil
}

func (b *LocalBackend) Export(_ context.Context, w io.Writer) error {
	return sheet.WriteExport(w, b.sheet.Snapshot())
}
