package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"exam-sheet/internal/sheet"
)

type Config struct {
	Backend Backend
	// Target names the backend in the banner, e.g. a file path or server URL.
	Target string
}

func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	if cfg.Backend == nil {
		return errors.New("backend is required")
	}
	backend := cfg.Backend
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "sheet-cli")
	if cfg.Target != "" {
		fmt.Fprintf(out, "backend=%s\n", cfg.Target)
	}
	fmt.Fprintln(out)
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		switch command {
		case "help":
			printHelp(out)
		case "exit", "quit":
			return nil
		case "show":
			snapshot, err := backend.Snapshot(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", describeError(err))
				continue
			}
			printSheet(out, snapshot)
		case "summary":
			snapshot, err := backend.Snapshot(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", describeError(err))
				continue
			}
			printSummary(out, sheet.Summarize(snapshot))
		case "answer":
			if len(args) != 3 {
				fmt.Fprintln(out, "usage: answer <question> <letter>")
				continue
			}
			question, err := parseQuestionArg(args, 1)
			if err != nil {
				fmt.Fprintf(out, "invalid question: %v\n", err)
				continue
			}
			report(out, backend.SetAnswer(ctx, question, args[2]), "question %d answered", question)
		case "unanswer":
			question, err := parseQuestionArg(args, 1)
			if err != nil {
				fmt.Fprintln(out, "usage: unanswer <question>")
				continue
			}
			report(out, backend.ClearAnswer(ctx, question), "question %d cleared", question)
		case "mark":
			if len(args) != 3 {
				fmt.Fprintln(out, "usage: mark <question> correct|incorrect")
				continue
			}
			question, err := parseQuestionArg(args, 1)
			if err != nil {
				fmt.Fprintf(out, "invalid question: %v\n", err)
				continue
			}
			isCorrect, err := parseMark(args[2])
			if err != nil {
				fmt.Fprintf(out, "invalid mark: %v\n", err)
				continue
			}
			report(out, backend.SetCorrectness(ctx, question, isCorrect), "question %d marked", question)
		case "unmark":
			question, err := parseQuestionArg(args, 1)
			if err != nil {
				fmt.Fprintln(out, "usage: unmark <question>")
				continue
			}
			report(out, backend.ClearCorrectness(ctx, question), "question %d unmarked", question)
		case "more":
			if err := backend.IncreaseQuestionCount(ctx); err != nil {
				fmt.Fprintf(out, "error: %s\n", describeError(err))
				continue
			}
			printCount(ctx, out, backend)
		case "fewer":
			if err := backend.DecreaseQuestionCount(ctx); err != nil {
				fmt.Fprintf(out, "error: %s\n", describeError(err))
				continue
			}
			printCount(ctx, out, backend)
		case "options":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: options <n>")
				continue
			}
			n, err := parseQuestionArg(args, 1)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", describeError(sheet.ErrInvalidOptionsPerQuestion))
				continue
			}
			report(out, backend.SetOptionsPerQuestion(ctx, n), "options per question set to %d, answers and marks reset", n)
		case "clear":
			confirmed, err := promptYesNo(reader, out, "clear all answers and marks? (yes/no): ")
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(out, "Nothing cleared.")
				continue
			}
			report(out, backend.ClearAll(ctx), "sheet cleared")
		case "export":
			path := sheet.ExportFilename
			if len(args) > 1 {
				path = args[1]
			}
			report(out, exportTo(ctx, backend, path), "exported to %s", path)
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
	}
}

func report(out io.Writer, err error, format string, args ...any) {
	if err != nil {
		fmt.Fprintf(out, "error: %s\n", describeError(err))
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}

func printCount(ctx context.Context, out io.Writer, backend Backend) {
	snapshot, err := backend.Snapshot(ctx)
	if err != nil {
		fmt.Fprintf(out, "error: %s\n", describeError(err))
		return
	}
	fmt.Fprintf(out, "%d questions\n", snapshot.QuestionCount)
}

func exportTo(ctx context.Context, backend Backend, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := backend.Export(ctx, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
