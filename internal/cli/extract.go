package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func runExtract(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
			fmt.Fprintln(stderr, "extract requires exactly one document")
			return ExitUsage
		}
		path := fs.Arg(0)
		if err := checkDocument(path); err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}

		ctx, stop := notifyContext(context.Background())
		defer stop()
		text, err := extractFile(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "Extraction failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, text)
		return ExitOK
	}
}
