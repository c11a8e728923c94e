package cli

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"reviserr/internal/ui/live"
)

func runGenerate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		providerName := fs.String("provider", "", "LLM provider (openai|cohere)")
		configPath := fs.String("config", "", "Path to config file")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "generate requires exactly one document")
			return ExitUsage
		}
		if !validProviderFlag(*providerName, stderr) {
			return ExitUsage
		}
		path := fs.Arg(0)
		if err := checkDocument(path); err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		env, err := newEnvironment(cfg, envOptions{provider: *providerName, logOutput: stderr})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start session: %v\n", err)
			return ExitError
		}
		defer env.close(stderr)

		text, offline, err := loadDocument(env.ctx, path, env.providerBaseURL())
		if offline {
			fmt.Fprintln(stderr, live.OfflineMessage)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Extraction failed: %v\n", err)
			return ExitError
		}

		// Prompts and progress go to stderr so stdout stays valid JSON.
		set, err := generatePlain(env, bufio.NewReader(stdinInput), stderr, text)
		if err != nil {
			fmt.Fprintln(stderr, generationFailure(err))
			return ExitError
		}
		data, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Failed to encode questions: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, string(data))
		return ExitOK
	}
}
