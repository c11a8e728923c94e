package live

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorAccent    = lipgloss.Color("#F28C28")
	colorMuted     = lipgloss.Color("244")
	colorCorrect   = lipgloss.Color("#51CB55")
	colorIncorrect = lipgloss.Color("#F87070")
	colorInfo      = lipgloss.Color("#61D4B3")
	colorError     = lipgloss.Color("#FF5959")
	colorInk       = lipgloss.Color("#181818")
)

func newProgressBar(noColor bool) progress.Model {
	if noColor {
		return progress.New(progress.WithFillCharacters('#', '.'), progress.WithWidth(40))
	}
	return progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
}

// View renders the live UI.
func (m Model) View() string {
	parts := []string{renderNavbar(m.state, m.opts.NoColor)}
	if m.state.Info != "" {
		parts = append(parts, renderBanner("ℹ "+m.state.Info, colorInfo, m.opts.NoColor))
	}
	if m.state.Error != "" {
		parts = append(parts, renderBanner("⚠ "+m.state.Error, colorError, m.opts.NoColor))
	}
	if m.state.KeyFormOpen {
		parts = append(parts, m.renderKeyForm())
	} else {
		parts = append(parts, m.renderStage())
	}
	parts = append(parts, stylize("Privacy-first: your key and document stay in memory and are erased on exit.", m.opts.NoColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) renderStage() string {
	switch m.state.Stage {
	case StageLanding:
		return renderLanding(m.opts.NoColor)
	case StageExtracting:
		return m.renderExtracting()
	case StageMCQ:
		return m.renderMCQ()
	case StageQuiz:
		return m.renderQuiz()
	case StageDone:
		return m.renderDone()
	}
	return ""
}

// renderNavbar renders the title line with the key status.
func renderNavbar(state State, noColor bool) string {
	status := "Set API Key [k]"
	if state.KeySet {
		status = "API Key Set (" + state.Provider.Label() + ")"
	}
	return stylize("★ Reviserr", noColor, colorAccent) + "    " + stylize(status, noColor, colorMuted)
}

func renderLanding(noColor bool) string {
	lines := []string{
		"",
		stylize("AI-powered Revision Helper", noColor, colorMuted),
		"Turn your study material (PDF/Word) into an interactive multiple-choice quiz using your own LLM API key.",
		stylize("Nothing is uploaded anywhere except the direct call to your LLM provider.", noColor, colorAccent),
		"",
		"enter: start now    k: set API key    q: quit",
		"",
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderExtracting() string {
	lines := []string{
		"",
		stylize("1. Upload Study Material", m.opts.NoColor, colorMuted),
		"PDF or Word file: " + m.path.View(),
	}
	if m.state.Extracting {
		lines = append(lines, "Extracting...")
	} else {
		lines = append(lines, "", "enter: extract text & continue    esc: cancel")
	}
	return strings.Join(append(lines, ""), "\n")
}

func (m Model) renderMCQ() string {
	lines := []string{
		"",
		stylize("2. Generate MCQs with LLM", m.opts.NoColor, colorMuted),
		"Document: " + m.state.DocumentName,
		"Provider: " + m.state.Provider.Label(),
		"",
	}
	if m.state.Generating {
		lines = append(lines,
			m.bar.ViewAs(m.state.Progress),
			stylize(formatProgressLabel(m.state.Progress), m.opts.NoColor, colorAccent),
		)
	} else {
		lines = append(lines, "enter: generate MCQs    k: edit API key    esc: back    q: quit")
	}
	return strings.Join(append(lines, ""), "\n")
}

func (m Model) renderQuiz() string {
	if m.session == nil {
		return ""
	}
	view := m.session.Current()
	lines := []string{
		"",
		stylize("3. Quiz Mode", m.opts.NoColor, colorMuted),
		formatQuestionHeader(view.Index, view.Total, m.state.Score),
		"",
		lipgloss.NewStyle().Bold(!m.opts.NoColor).Render(view.Question),
		"",
	}
	for i, option := range view.Options {
		lines = append(lines, m.renderOption(i, option))
	}
	lines = append(lines, "")
	if outcome := m.state.Outcome; outcome != nil {
		if outcome.Correct {
			lines = append(lines, stylize("✅ Correct!", m.opts.NoColor, colorCorrect))
		} else {
			lines = append(lines, stylize("❌ Incorrect. The correct answer was "+outcome.Answer+".", m.opts.NoColor, colorIncorrect))
		}
	} else {
		lines = append(lines, "1-4 or ↑/↓ + enter: answer    r: restart    s: start over")
	}
	return strings.Join(append(lines, ""), "\n")
}

func (m Model) renderOption(index int, option string) string {
	cursor := "  "
	if m.state.Outcome == nil && index == m.state.Cursor {
		cursor = "> "
	}
	line := cursor + strconv.Itoa(index+1) + ". " + option
	outcome := m.state.Outcome
	switch {
	case outcome == nil:
		return line
	case option == outcome.Answer:
		return stylize(line+"  ✓", m.opts.NoColor, colorCorrect)
	case option == outcome.Selected:
		return stylize(line+"  ✗", m.opts.NoColor, colorIncorrect)
	default:
		return stylize(line, m.opts.NoColor, colorMuted)
	}
}

func (m Model) renderDone() string {
	lines := []string{
		"",
		stylize("Quiz Complete!", m.opts.NoColor, colorMuted),
		"🎉 Congratulations! " + formatScore(m.state.Score, m.state.Total) + ".",
		"You have finished revising. Want to try another study material or a different API key?",
		"",
		m.review.View(),
		"",
		"enter: start over    q: quit",
	}
	return strings.Join(append(lines, ""), "\n")
}

func (m Model) renderKeyForm() string {
	lines := []string{
		stylize("Set LLM API Key", m.opts.NoColor, colorAccent),
		"Please enter your private LLM API key.",
		"Your key is never stored or sent anywhere except for direct LLM API calls.",
		"",
		"LLM Provider: " + m.keyForm.provider().Label() + "  (tab to change)",
		"API Key: " + m.keyForm.input.View(),
		"",
		"enter: save    esc: cancel",
		stylize("Keys are held in memory only and erased on exit.", m.opts.NoColor, colorMuted),
	}
	box := lipgloss.NewStyle().Padding(1, 2)
	if !m.opts.NoColor {
		box = box.Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// renderBanner renders an info or error banner.
func renderBanner(text string, background lipgloss.Color, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Background(background).Foreground(colorInk).Padding(0, 1).Render(text)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
