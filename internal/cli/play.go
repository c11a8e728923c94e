package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"

	"reviserr/internal/mcq"
	"reviserr/internal/quiz"
)

// optionShuffler orders quiz options; nil uses the random source.
var optionShuffler quiz.Shuffler

func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "play requires exactly one question file")
			return ExitUsage
		}

		set, err := mcq.LoadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
			return ExitError
		}
		if err := playQuiz(bufio.NewReader(stdinInput), stdout, set, optionShuffler); err != nil {
			if errors.Is(err, errNoInput) {
				fmt.Fprintln(stderr, "Quiz ended early.")
				return ExitError
			}
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
