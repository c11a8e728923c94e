package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"reviserr/internal/credential"
	"reviserr/internal/extract"
	"reviserr/internal/generate"
	"reviserr/internal/mcq"
	"reviserr/internal/quiz"
)

var extractFile = extract.File

// checkDocument rejects a missing or unsupported path before any I/O.
func checkDocument(path string) error {
	if strings.TrimSpace(path) == "" {
		return &generate.ValidationError{Kind: generate.NoFile, Message: "No file selected."}
	}
	if !extract.Accepts(path, "") {
		return &generate.ValidationError{Kind: generate.UnsupportedType, Message: "Only PDF and Word files are supported."}
	}
	return nil
}

// loadDocument extracts path while probing the provider host.
func loadDocument(ctx context.Context, path, baseURL string) (string, bool, error) {
	var (
		text    string
		offline bool
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		text, err = extractFile(groupCtx, path)
		return err
	})
	group.Go(func() error {
		offline = probeOffline(groupCtx, baseURL)
		return nil
	})
	if err := group.Wait(); err != nil {
		return "", offline, err
	}
	return text, offline, nil
}

// progressPrinter reports generation checkpoints as plain lines.
type progressPrinter struct {
	out io.Writer
}

func (p progressPrinter) OnState(generate.State) {}

func (p progressPrinter) OnProgress(progress float64) {
	if progress <= 0 {
		return
	}
	fmt.Fprintf(p.out, "Generating questions... %d%%\n", int(progress*100+0.5))
}

// keyEntry is the plain-mode key form: it reads a key into the slot when
// the generator finds none. A blank answer keeps the current key.
type keyEntry struct {
	reader *bufio.Reader
	out    io.Writer
	slot   *credential.Slot
	label  string
	err    error
}

func (k *keyEntry) PromptForKey() {
	if k.slot.IsSet() {
		fmt.Fprintln(k.out, "Press Enter to keep the current key.")
	}
	key, err := readAPIKey(k.reader, k.out, k.label)
	if err != nil {
		k.err = err
		return
	}
	k.slot.Set(key)
}

// generatePlain runs one generation against text, asking for a key first
// when the slot is empty. A key supplied at the missing-key prompt is used
// right away.
func generatePlain(env *environment, reader *bufio.Reader, prompts io.Writer, text string) (mcq.QuestionSet, error) {
	entry := &keyEntry{reader: reader, out: prompts, slot: env.slot, label: env.provider.Label()}
	if !env.slot.IsSet() {
		entry.PromptForKey()
	}
	if entry.err != nil {
		return mcq.QuestionSet{}, fmt.Errorf("read API key: %w", entry.err)
	}

	gen := generate.New(generate.Config{
		Providers:   env.registry,
		Credentials: env.slot,
		Observer:    progressPrinter{out: prompts},
		KeyPrompter: entry,
	})
	req := generate.Request{SourceText: text, Provider: env.provider}
	set, err := gen.Generate(env.ctx, req)
	var missing *generate.MissingKeyError
	if errors.As(err, &missing) {
		if entry.err != nil {
			return mcq.QuestionSet{}, fmt.Errorf("read API key: %w", entry.err)
		}
		if env.slot.IsSet() {
			return gen.Generate(env.ctx, req)
		}
	}
	return set, err
}

// generateUntilDone repeats generatePlain on the same text while the user
// asks to retry. Each retry offers to replace the key.
func generateUntilDone(env *environment, reader *bufio.Reader, out, stderr io.Writer, text string) (mcq.QuestionSet, bool) {
	for attempt := 0; ; attempt++ {
		if attempt > 0 && env.slot.IsSet() {
			(&keyEntry{reader: reader, out: out, slot: env.slot, label: env.provider.Label()}).PromptForKey()
		}
		set, err := generatePlain(env, reader, out, text)
		if err == nil {
			return set, true
		}
		fmt.Fprintln(stderr, generationFailure(err))
		retry, promptErr := promptYesNo(reader, out, "Retry?", false)
		if promptErr != nil || !retry {
			return mcq.QuestionSet{}, false
		}
	}
}

// generationFailure formats err the way the live UI banner does.
func generationFailure(err error) string {
	var missing *generate.MissingKeyError
	if errors.As(err, &missing) {
		return missing.Error()
	}
	return "MCQ generation failed: " + err.Error()
}

// playQuiz runs the question loop on plain text until the user declines a
// restart or input ends.
func playQuiz(reader *bufio.Reader, out io.Writer, set mcq.QuestionSet, shuffler quiz.Shuffler) error {
	session, err := quiz.New(set, shuffler)
	if err != nil {
		return err
	}
	for {
		transition, err := playRound(reader, out, session)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n🎉 Congratulations! You scored %d out of %d\n\n", transition.Score, transition.Total)
		again, err := promptYesNo(reader, out, "Restart quiz?", false)
		if err != nil || !again {
			return err
		}
		session.Restart()
	}
}

func playRound(reader *bufio.Reader, out io.Writer, session *quiz.Session) (quiz.Transition, error) {
	for {
		view := session.Current()
		fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", view.Index+1, view.Total, view.Question)
		for i, option := range view.Options {
			fmt.Fprintf(out, "  %d. %s\n", i+1, option)
		}
		choice, err := promptChoice(reader, out, len(view.Options))
		if err != nil {
			return quiz.Transition{}, err
		}
		outcome, _ := session.Select(view.Options[choice-1])
		if outcome.Correct {
			fmt.Fprintln(out, "✅ Correct!")
		} else {
			fmt.Fprintf(out, "❌ Incorrect. The correct answer was %s.\n", outcome.Answer)
		}
		if transition := session.Advance(); transition.Kind == quiz.TransitionComplete {
			return transition, nil
		}
	}
}
