package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-sheet/internal/httpapi"
	"exam-sheet/internal/sheet"
	"exam-sheet/internal/sheetclient"
)

func runScript(t *testing.T, backend Backend, script string) string {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(script), &out, Config{Backend: backend})
	require.NoError(t, err)
	return out.String()
}

func TestRunRequiresBackend(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(""), &out, Config{})
	assert.Error(t, err)
}

func TestRunAnswersAndMarks(t *testing.T) {
	s := sheet.New()
	output := runScript(t, NewLocalBackend(s), "answer 1 b\nmark 1 correct\nmark 2 incorrect\nanswer 3 z\nexit\n")

	snapshot := s.Snapshot()
	assert.Equal(t, map[int]string{1: "B"}, snapshot.Answers)
	assert.Equal(t, map[int]bool{1: true, 2: false}, snapshot.Correctness)
	assert.Contains(t, output, "question 1 answered")
	assert.Contains(t, output, "error: option is not in the current alphabet")
}

func TestRunReportsOutOfRangeQuestion(t *testing.T) {
	output := runScript(t, NewLocalBackend(sheet.New()), "answer 21 A\nanswer x A\n")

	assert.Contains(t, output, "error: question is outside the sheet")
	assert.Contains(t, output, "invalid question: question must be a positive integer")
}

func TestRunUnanswerAndUnmark(t *testing.T) {
	s := sheet.New()
	require.NoError(t, s.SetAnswer(4, "A"))
	require.NoError(t, s.SetCorrectness(4, false))

	runScript(t, NewLocalBackend(s), "unanswer 4\n")
	assert.Empty(t, s.Snapshot().Answers)
	assert.Equal(t, map[int]bool{4: false}, s.Snapshot().Correctness)

	runScript(t, NewLocalBackend(s), "unmark 4\n")
	assert.Empty(t, s.Snapshot().Correctness)
}

func TestRunQuestionCountAndOptions(t *testing.T) {
	s := sheet.New()
	output := runScript(t, NewLocalBackend(s), "more\nmore\nfewer\noptions 6\noptions 9\n")

	assert.Equal(t, 25, s.Snapshot().QuestionCount)
	assert.Equal(t, 6, s.Snapshot().OptionsPerQuestion)
	assert.Contains(t, output, "30 questions")
	assert.Contains(t, output, "options per question must be between 3 and 6")
}

func TestRunClearAsksForConfirmation(t *testing.T) {
	s := sheet.New()
	require.NoError(t, s.SetAnswer(1, "A"))

	output := runScript(t, NewLocalBackend(s), "clear\nno\n")
	assert.Contains(t, output, "Nothing cleared.")
	assert.Len(t, s.Snapshot().Answers, 1)

	output = runScript(t, NewLocalBackend(s), "clear\nmaybe\nyes\n")
	assert.Contains(t, output, "Please answer yes or no.")
	assert.Contains(t, output, "sheet cleared")
	assert.Empty(t, s.Snapshot().Answers)
}

func TestRunShowAndSummary(t *testing.T) {
	s := sheet.New()
	require.NoError(t, s.SetAnswer(2, "D"))
	require.NoError(t, s.SetCorrectness(2, true))

	output := runScript(t, NewLocalBackend(s), "show\nsummary\n")

	assert.Contains(t, output, "20 questions, options A B C D")
	assert.Contains(t, output, "  2. D  ✓")
	assert.Contains(t, output, "Answered: 1/20")
	assert.Contains(t, output, "Correct: 1  Incorrect: 0  Not evaluated: 0")
	assert.Contains(t, output, "  2. D (correct)")
}

func TestRunExportWritesFile(t *testing.T) {
	s := sheet.New()
	require.NoError(t, s.SetAnswer(1, "C"))
	path := filepath.Join(t.TempDir(), "out", sheet.ExportFilename)

	output := runScript(t, NewLocalBackend(s), "export "+path+"\n")
	assert.Contains(t, output, "exported to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []sheet.ExportEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 20)
	assert.Equal(t, "C", entries[0].Answer)
}

func TestRunAgainstRemoteBackend(t *testing.T) {
	s := sheet.New()
	server := httptest.NewServer(httpapi.NewRouter(s, httpapi.RouterOptions{}))
	defer server.Close()

	client := sheetclient.NewHTTPClient(server.URL, server.Client())
	output := runScript(t, client, "answer 5 a\nanswer 50 a\nmark 5 c\nshow\n")

	assert.Equal(t, map[int]string{5: "A"}, s.Snapshot().Answers)
	assert.Equal(t, map[int]bool{5: true}, s.Snapshot().Correctness)
	assert.Contains(t, output, "error: question number out of range")
	assert.Contains(t, output, "  5. A  ✓")
}

func TestRunUnknownCommand(t *testing.T) {
	output := runScript(t, NewLocalBackend(sheet.New()), "dance\n")
	assert.Contains(t, output, "unknown command")
}

func TestParseMark(t *testing.T) {
	isCorrect, err := parseMark("Correct")
	require.NoError(t, err)
	assert.True(t, isCorrect)

	isCorrect, err = parseMark("i")
	require.NoError(t, err)
	assert.False(t, isCorrect)

	_, err = parseMark("maybe")
	assert.Error(t, err)
}

func TestPromptYesNoRetriesUntilValid(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("maybe\nyes\n"))
	var out bytes.Buffer

	ok, err := promptYesNo(reader, &out, "continue? ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Please answer yes or no.")
}
