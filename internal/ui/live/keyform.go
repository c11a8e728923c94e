package live

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reviserr/internal/provider"
)

// keyForm is the masked API key entry with a provider picker.
type keyForm struct {
	input     textinput.Model
	providers []provider.Kind
	selected  int
}

func newKeyForm(providers []provider.Kind) keyForm {
	input := textinput.New()
	input.Placeholder = "API key"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 256
	return keyForm{input: input, providers: providers}
}

// open resets the form with current preselected and focuses the key field.
func (f keyForm) open(current provider.Kind) (keyForm, tea.Cmd) {
	f.input.Reset()
	f.selected = 0
	for i, kind := range f.providers {
		if kind == current {
			f.selected = i
		}
	}
	return f, f.input.Focus()
}

func (f keyForm) close() keyForm {
	f.input.Reset()
	f.input.Blur()
	return f
}

func (f keyForm) provider() provider.Kind {
	if len(f.providers) == 0 {
		return provider.OpenAI
	}
	return f.providers[f.selected]
}

func (f keyForm) cycle(step int) keyForm {
	if len(f.providers) == 0 {
		return f
	}
	f.selected = (f.selected + step + len(f.providers)) % len(f.providers)
	return f
}

// value returns the trimmed key typed so far.
func (f keyForm) value() string {
	return strings.TrimSpace(f.input.Value())
}

func (f keyForm) update(msg tea.Msg) (keyForm, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}
