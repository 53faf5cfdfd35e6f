package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"exam-sheet/internal/sheet"
	"exam-sheet/internal/sheetclient"
)

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  show")
	fmt.Fprintln(out, "  summary")
	fmt.Fprintln(out, "  answer <question> <letter>")
	fmt.Fprintln(out, "  unanswer <question>")
	fmt.Fprintln(out, "  mark <question> correct|incorrect")
	fmt.Fprintln(out, "  unmark <question>")
	fmt.Fprintln(out, "  more")
	fmt.Fprintln(out, "  fewer")
	fmt.Fprintln(out, "  options <n>")
	fmt.Fprintln(out, "  clear")
	fmt.Fprintln(out, "  export [path]")
	fmt.Fprintln(out, "  exit")
}

func parseQuestionArg(args []string, index int) (int, error) {
	if len(args) <= index {
		return 0, errors.New("question number is required")
	}

	value, err := strconv.Atoi(args[index])
	if err != nil || value <= 0 {
		return 0, errors.New("question must be a positive integer")
	}
	return value, nil
}

func parseMark(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "correct", "c", "yes", "y":
		return true, nil
	case "incorrect", "i", "no", "n":
		return false, nil
	default:
		return false, errors.New("mark must be correct or incorrect")
	}
}

func promptYesNo(reader *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	for {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

func describeError(err error) string {
	var apiErr *sheetclient.APIError
	switch {
	case errors.Is(err, sheetclient.ErrServiceUnavailable):
		return "sheet service unavailable"
	case errors.Is(err, sheet.ErrQuestionOutOfRange):
		return "question is outside the sheet"
	case errors.Is(err, sheet.ErrInvalidOption):
		return "option is not in the current alphabet"
	case errors.Is(err, sheet.ErrInvalidOptionsPerQuestion):
		return fmt.Sprintf("options per question must be between %d and %d",
			sheet.MinOptionsPerQuestion, sheet.MaxOptionsPerQuestion)
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}

func printSheet(out io.Writer, snapshot sheet.Snapshot) {
	options := sheet.Alphabet(snapshot.OptionsPerQuestion)
	fmt.Fprintf(out, "%d questions, options %s\n", snapshot.QuestionCount, strings.Join(options, " "))

	for question := 1; question <= snapshot.QuestionCount; question++ {
		answer, ok := snapshot.Answers[question]
		if !ok {
			answer = "-"
		}
		mark := ""
		if isCorrect, ok := snapshot.Correctness[question]; ok {
			mark = "  ✗"
			if isCorrect {
				mark = "  ✓"
			}
		}
		fmt.Fprintf(out, "%3d. %s%s\n", question, answer, mark)
	}
}

func printSummary(out io.Writer, summary sheet.Summary) {
	fmt.Fprintf(out, "Answered: %d/%d\n", summary.Answered, summary.Total)
	fmt.Fprintf(out, "Correct: %d  Incorrect: %d  Not evaluated: %d\n",
		summary.Correct, summary.Incorrect, summary.Unevaluated)
	for _, entry := range summary.Entries {
		fmt.Fprintf(out, "  %d. %s (%s)\n", entry.Question, entry.Answer, strings.ReplaceAll(entry.Mark, "_", " "))
	}
}
