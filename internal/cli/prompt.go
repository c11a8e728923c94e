package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// stdinInput feeds interactive prompts.
var stdinInput io.Reader = os.Stdin

// readPassword reads a line from a terminal without echo.
var readPassword = term.ReadPassword

// terminalFD returns the descriptor of r when it is an interactive terminal.
var terminalFD = func(r io.Reader) (int, bool) {
	file, ok := r.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(file.Fd())
	return fd, term.IsTerminal(fd)
}

// readLine reads a line from the reader, trimming line endings.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptString asks for a string value with an optional default.
func promptString(reader *bufio.Reader, out io.Writer, label, defaultValue string) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && defaultValue != "" {
			return defaultValue, nil
		}
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// promptYesNo prompts for a yes/no response with a default.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return false, err
		}
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" {
			return defaultYes, nil
		}
		switch line {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if err == io.EOF {
				return false, fmt.Errorf("invalid response %q", line)
			}
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

var errNoInput = errors.New("no input")

// readAPIKey asks for a key without echoing it when stdin is a terminal.
// The returned key is trimmed.
func readAPIKey(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "Enter your %s API key: ", label)
	if fd, ok := terminalFD(stdinInput); ok {
		raw, err := readPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		key := strings.TrimSpace(string(raw))
		for i := range raw {
			raw[i] = 0
		}
		return key, nil
	}
	line, err := readLine(reader)
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptChoice asks for an option number in [1,count].
func promptChoice(reader *bufio.Reader, out io.Writer, count int) (int, error) {
	for {
		fmt.Fprintf(out, "Your answer [1-%d]: ", count)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" && err == io.EOF {
			return 0, errNoInput
		}
		choice, convErr := strconv.Atoi(line)
		if convErr == nil && choice >= 1 && choice <= count {
			return choice, nil
		}
		if err == io.EOF {
			return 0, fmt.Errorf("invalid answer %q", line)
		}
		fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", count)
	}
}
