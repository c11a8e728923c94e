package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"reviserr/internal/credential"
	"reviserr/internal/mcq"
	"reviserr/internal/provider"
	"reviserr/internal/testutil"
)

func TestGenerationFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "generation",
		ScenarioInitializer: func(ctx *godog.ScenarioContext) { initializeGenerationScenario(t, ctx) },
		Options: &godog.Options{
			Format:    "progress",
			Paths:     []string{filepath.Join("..", "..", "features", "generation.feature")},
			Strict:    true,
			Output:    io.Discard,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("generation features failed")
	}
}

type generationScenario struct {
	t        *testing.T
	server   *testutil.ChatServer
	slot     *credential.Slot
	observer *recordingObserver
	prompted int
	set      mcq.QuestionSet
	err      error
}

func initializeGenerationScenario(t *testing.T, ctx *godog.ScenarioContext) {
	state := &generationScenario{t: t}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a provider that replies with (\d+) valid questions?$`, state.replyValid)
	ctx.Step(`^a provider that replies with (\d+) valid questions? wrapped in prose$`, state.replyWrapped)
	ctx.Step(`^a provider that replies with (\d+) valid and (\d+) invalid questions?$`, state.replyMixed)
	ctx.Step(`^a provider that fails with status (\d+)$`, state.replyStatus)
	ctx.Step(`^an API key is set$`, state.keyIsSet)
	ctx.Step(`^I generate questions from a long enough document$`, state.generateLong)
	ctx.Step(`^I generate questions from "([^"]*)"$`, state.generateFrom)
	ctx.Step(`^(\d+) questions are produced$`, state.questionsProduced)
	ctx.Step(`^progress ends at (\d+)$`, state.progressEndsAt)
	ctx.Step(`^generation fails with "([^"]*)"$`, state.failsWith)
	ctx.Step(`^generation fails with a provider error$`, state.failsWithProviderError)
	ctx.Step(`^the provider was not called$`, state.providerNotCalled)
	ctx.Step(`^the key form was requested$`, state.keyRequested)
}

func (s *generationScenario) reset() {
	s.server = nil
	s.slot = credential.NewSlot()
	s.observer = &recordingObserver{}
	s.prompted = 0
	s.set = mcq.QuestionSet{}
	s.err = nil
}

func questionJSON(i int, valid bool) string {
	answer := fmt.Sprintf("Option %d", i)
	if !valid {
		answer = "Not listed"
	}
	return fmt.Sprintf(`{"question":"Question %d?","options":["Option %d","B","C","D"],"answer":%q}`, i, i, answer)
}

func (s *generationScenario) serve(status int, content string) {
	s.server = testutil.StartChatServer(s.t, testutil.ChatServerConfig{Status: status, Content: content})
}

func (s *generationScenario) replyValid(n int) error {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, questionJSON(i, true))
	}
	s.serve(http.StatusOK, "["+strings.Join(items, ",")+"]")
	return nil
}

func (s *generationScenario) replyWrapped(n int) error {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, questionJSON(i, true))
	}
	s.serve(http.StatusOK, "Here are your questions:\n["+strings.Join(items, ",")+"]\nGood luck!")
	return nil
}

func (s *generationScenario) replyMixed(valid, invalid int) error {
	items := make([]string, 0, valid+invalid)
	for i := 0; i < valid; i++ {
		items = append(items, questionJSON(i, true))
	}
	for i := 0; i < invalid; i++ {
		items = append(items, questionJSON(valid+i, false))
	}
	s.serve(http.StatusOK, "["+strings.Join(items, ",")+"]")
	return nil
}

func (s *generationScenario) replyStatus(status int) error {
	s.serve(status, "")
	return nil
}

func (s *generationScenario) keyIsSet() error {
	s.slot.Set("sk-feature")
	return nil
}

func (s *generationScenario) generateLong() error {
	return s.generateFrom(strings.Repeat("Mitochondria produce most of the cell's ATP. ", 4))
}

func (s *generationScenario) generateFrom(text string) error {
	registry := provider.NewRegistry(map[provider.Kind]provider.Options{
		provider.OpenAI: {BaseURL: s.server.BaseURL},
	})
	gen := New(Config{
		Providers:   registry,
		Credentials: s.slot,
		Observer:    s.observer,
		KeyPrompter: KeyPrompterFunc(func() { s.prompted++ }),
	})
	s.set, s.err = gen.Generate(context.Background(), Request{SourceText: text, Provider: provider.OpenAI})
	return nil
}

func (s *generationScenario) questionsProduced(n int) error {
	if s.err != nil {
		return fmt.Errorf("unexpected error: %v", s.err)
	}
	if s.set.Len() != n {
		return fmt.Errorf("expected %d questions, got %d", n, s.set.Len())
	}
	return nil
}

func (s *generationScenario) progressEndsAt(want int) error {
	progress := s.observer.progress
	if len(progress) == 0 {
		return fmt.Errorf("no progress reported")
	}
	if last := progress[len(progress)-1]; last != float64(want) {
		return fmt.Errorf("expected progress to end at %d, got %v", want, progress)
	}
	return nil
}

func (s *generationScenario) failsWith(message string) error {
	if s.err == nil {
		return fmt.Errorf("expected failure %q", message)
	}
	if s.err.Error() != message {
		return fmt.Errorf("expected %q, got %q", message, s.err.Error())
	}
	return nil
}

func (s *generationScenario) failsWithProviderError() error {
	var providerErr *provider.Error
	if !errors.As(s.err, &providerErr) {
		return fmt.Errorf("expected provider error, got %v", s.err)
	}
	return nil
}

func (s *generationScenario) providerNotCalled() error {
	if calls := s.server.Calls(); calls != 0 {
		return fmt.Errorf("expected no provider calls, got %d", calls)
	}
	return nil
}

func (s *generationScenario) keyRequested() error {
	if s.prompted != 1 {
		return fmt.Errorf("expected key prompt once, got %d", s.prompted)
	}
	return nil
}
