package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"reviserr/internal/generate"
	"reviserr/internal/ui/live"
)

// TestUIModeFeatures runs the interface selection scenarios.
func TestUIModeFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "ui-mode",
		ScenarioInitializer: initializeUIModeScenario,
		Options: &godog.Options{
			Format:    "progress",
			Paths:     []string{filepath.Join("..", "..", "features", "ui_mode.feature")},
			Strict:    true,
			Output:    io.Discard,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

func initializeUIModeScenario(ctx *godog.ScenarioContext) {
	state := &uiModeScenario{}
	orig := isTerminal
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		isTerminal = func(io.Writer) bool { return state.isTTY }
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		isTerminal = orig
		return ctx, nil
	})

	ctx.Step(`^a TTY stdout$`, state.givenTTY)
	ctx.Step(`^stdout is not a TTY$`, state.givenNonTTY)
	ctx.Step(`^I run "[^"]+" with ui mode "([^"]*)"$`, state.whenIRun)
	ctx.Step(`^generation reports progress ([0-9., and]+)$`, state.whenProgress)
	ctx.Step(`^generation fails$`, state.whenFails)
	ctx.Step(`^a live UI is shown$`, state.thenLive)
	ctx.Step(`^the output uses plain text$`, state.thenPlain)
	ctx.Step(`^a fallback warning is shown$`, state.thenWarning)
	ctx.Step(`^the progress bar shows (\d+) percent$`, state.thenProgress)
}

type uiModeScenario struct {
	isTTY    bool
	decision uiModeDecision
	uiState  live.State
}

func (s *uiModeScenario) reset() {
	s.isTTY = false
	s.decision = uiModeDecision{}
	s.uiState = live.State{Stage: live.StageMCQ}
}

func (s *uiModeScenario) givenTTY() error {
	s.isTTY = true
	return nil
}

func (s *uiModeScenario) givenNonTTY() error {
	s.isTTY = false
	return nil
}

func (s *uiModeScenario) whenIRun(mode string) error {
	decision, err := resolveUIMode(mode, nil)
	if err != nil {
		return err
	}
	s.decision = decision
	return nil
}

// whenProgress feeds a list such as "0.2, 0.7 and 0.85" through the reducer.
func (s *uiModeScenario) whenProgress(list string) error {
	list = strings.ReplaceAll(list, " and ", ",")
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("parse progress %q: %w", field, err)
		}
		s.uiState = live.Reduce(s.uiState, live.Event{Kind: live.EventProgress, Progress: value})
	}
	return nil
}

func (s *uiModeScenario) whenFails() error {
	s.uiState = live.Reduce(s.uiState, live.Event{Kind: live.EventGenerationState, State: generate.StateFailed})
	return nil
}

func (s *uiModeScenario) thenLive() error {
	if !s.decision.useLive {
		return fmt.Errorf("expected live UI to be enabled")
	}
	return nil
}

func (s *uiModeScenario) thenPlain() error {
	if s.decision.useLive {
		return fmt.Errorf("expected plain output")
	}
	return nil
}

func (s *uiModeScenario) thenWarning() error {
	if s.decision.warning == "" {
		return fmt.Errorf("expected a fallback warning")
	}
	return nil
}

func (s *uiModeScenario) thenProgress(percent int) error {
	got := int(math.Round(s.uiState.Progress * 100))
	if got != percent {
		return fmt.Errorf("expected %d%% progress, got %d%%", percent, got)
	}
	return nil
}
