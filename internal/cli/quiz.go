package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	"reviserr/internal/generate"
	"reviserr/internal/provider"
	"reviserr/internal/ui/live"
)

func runQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		providerName := fs.String("provider", "", "LLM provider (openai|cohere)")
		uiMode := fs.String("ui", "", "UI mode (auto|live|plain)")
		configPath := fs.String("config", "", "Path to config file")
		noColor := fs.Bool("no-color", false, "Disable colors in the live UI")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 1 {
			fmt.Fprintln(stderr, "quiz accepts at most one document")
			return ExitUsage
		}
		if !validProviderFlag(*providerName, stderr) {
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		mode := cfg.UI.Mode
		if *uiMode != "" {
			mode = *uiMode
		}
		decision, err := resolveUIMode(mode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid UI mode: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		// Log lines would corrupt the alternate screen.
		var logOutput io.Writer = stderr
		if decision.useLive {
			logOutput = nil
		}
		env, err := newEnvironment(cfg, envOptions{provider: *providerName, logOutput: logOutput})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start session: %v\n", err)
			return ExitError
		}
		defer env.close(stderr)

		if decision.useLive {
			return runLiveQuiz(env, stdout, stderr, fs.Arg(0), cfg.UI.NoColor || *noColor)
		}
		return runPlainQuiz(env, stdout, stderr, fs.Arg(0))
	}
}

func validProviderFlag(value string, stderr io.Writer) bool {
	if value == "" {
		return true
	}
	if _, err := provider.ParseKind(value); err != nil {
		fmt.Fprintf(stderr, "Invalid --provider: %v\n", err)
		return false
	}
	return true
}

func runLiveQuiz(env *environment, stdout, stderr io.Writer, path string, noColor bool) int {
	ctrl := live.NewController()
	gen := generate.New(generate.Config{
		Providers:       env.registry,
		Credentials:     env.slot,
		Observer:        ctrl,
		KeyPrompter:     ctrl,
		CompletionPause: env.cfg.Pacing.PostGeneration,
	})
	deps := live.Deps{
		Generator:   gen,
		Credentials: env.slot,
		Extract:     extractFile,
		Providers:   env.registry.Kinds(),
	}
	opts := live.Options{
		NoColor:      noColor,
		AdvanceDelay: env.cfg.Pacing.PostAnswer,
		DocumentPath: path,
		Provider:     env.provider,
		Offline:      probeOffline(env.ctx, env.providerBaseURL()),
	}
	if err := ctrl.Run(env.ctx, nil, stdout, deps, opts); err != nil && env.ctx.Err() == nil {
		fmt.Fprintf(stderr, "Live UI failed: %v\n", err)
		return ExitError
	}
	return ExitOK
}

func runPlainQuiz(env *environment, stdout, stderr io.Writer, path string) int {
	reader := bufio.NewReader(stdinInput)
	if path == "" {
		value, err := promptString(reader, stdout, "Document path (PDF or Word)", "")
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", &generate.ValidationError{Kind: generate.NoFile, Message: "No file selected."})
			return ExitError
		}
		path = value
	}
	if err := checkDocument(path); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}

	text, offline, err := loadDocument(env.ctx, path, env.providerBaseURL())
	if offline {
		fmt.Fprintln(stderr, live.OfflineMessage)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Extraction failed: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(stdout, "Extracted %d characters from %s.\n", utf8.RuneCountInString(text), filepath.Base(path))

	set, ok := generateUntilDone(env, reader, stdout, stderr, text)
	if !ok {
		return ExitError
	}

	if err := playQuiz(reader, stdout, set, optionShuffler); err != nil {
		if errors.Is(err, errNoInput) {
			fmt.Fprintln(stderr, "Quiz ended early.")
			return ExitError
		}
		fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
		return ExitError
	}
	return ExitOK
}
