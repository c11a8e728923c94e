package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadAPIKeyFromPipe(t *testing.T) {
	withStdin(t, "  sk-piped \n")
	var out bytes.Buffer
	key, err := readAPIKey(bufio.NewReader(stdinInput), &out, "Cohere")
	if err != nil {
		t.Fatalf("read key: %v", err)
	}
	if key != "sk-piped" {
		t.Fatalf("unexpected key %q", key)
	}
	if !strings.Contains(out.String(), "Enter your Cohere API key:") {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestReadAPIKeyFromTerminalDoesNotEcho(t *testing.T) {
	originalFD, originalRead := terminalFD, readPassword
	t.Cleanup(func() { terminalFD, readPassword = originalFD, originalRead })

	var raw []byte
	terminalFD = func(io.Reader) (int, bool) { return 7, true }
	readPassword = func(fd int) ([]byte, error) {
		if fd != 7 {
			t.Fatalf("unexpected fd %d", fd)
		}
		raw = []byte(" sk-hidden ")
		return raw, nil
	}

	var out bytes.Buffer
	key, err := readAPIKey(bufio.NewReader(strings.NewReader("")), &out, "OpenAI")
	if err != nil {
		t.Fatalf("read key: %v", err)
	}
	if key != "sk-hidden" {
		t.Fatalf("unexpected key %q", key)
	}
	if strings.Contains(out.String(), "sk-hidden") {
		t.Fatalf("prompt echoed the key")
	}
	if !bytes.Equal(raw, make([]byte, len(raw))) {
		t.Fatalf("expected raw key bytes to be zeroed")
	}
}

func TestPromptChoice(t *testing.T) {
	var out bytes.Buffer
	choice, err := promptChoice(bufio.NewReader(strings.NewReader("abc\n0\n3\n")), &out, 4)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if choice != 3 {
		t.Fatalf("expected 3, got %d", choice)
	}
	if strings.Count(out.String(), "Please enter a number between 1 and 4.") != 2 {
		t.Fatalf("expected two hints, got %q", out.String())
	}

	if _, err := promptChoice(bufio.NewReader(strings.NewReader("")), &out, 4); !errors.Is(err, errNoInput) {
		t.Fatalf("expected no input error, got %v", err)
	}
}

func TestPromptYesNo(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "No\n", want: false},
		{input: "\n", want: false},
		{input: "maybe\nyes\n", want: true},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := promptYesNo(bufio.NewReader(strings.NewReader(tc.input)), &out, "Restart quiz?", false)
		if err != nil {
			t.Fatalf("%q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestCheckDocument(t *testing.T) {
	if err := checkDocument(" "); err == nil || err.Error() != "No file selected." {
		t.Fatalf("unexpected error %v", err)
	}
	if err := checkDocument("slides.pptx"); err == nil || err.Error() != "Only PDF and Word files are supported." {
		t.Fatalf("unexpected error %v", err)
	}
	if err := checkDocument("notes.PDF"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
