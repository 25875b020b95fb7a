package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks questions on a reader and prints them to the ui output
type Prompter struct {
	in *bufio.Reader
}

// NewPrompter reads answers from r
func NewPrompter(r io.Reader) *Prompter {
	return &Prompter{in: bufio.NewReader(r)}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Ask prints label and returns the trimmed answer, which may be empty
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(out, styles.prompt.Render(label)+" ")
	return p.readLine()
}

// AskRequired repeats the question until the answer is not empty
func (p *Prompter) AskRequired(label string) (string, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

// Confirm asks a y/n question until one of the two is typed
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		answer, err := p.Ask(question + ` Press "y" to confirm or "n" to skip:`)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}

// AskSecret reads a token without echo when stdin is a terminal and falls
// back to a plain line read otherwise.
func (p *Prompter) AskSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.AskRequired(label)
	}
	for {
		fmt.Fprint(out, styles.prompt.Render(label)+" ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		if secret := strings.TrimSpace(string(raw)); secret != "" {
			return secret, nil
		}
	}
}
