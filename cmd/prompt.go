package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter reads answers from the command's stdin. One bufio.Reader is
// shared so buffered input is not lost between prompts.
type prompter struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{in: in, r: bufio.NewReader(in), out: cmd.OutOrStdout()}
}

// ask prints label and reads one trimmed line
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// secret reads a password without echo when stdin is a terminal
func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(p.out, "%s: ", label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}
	line, err := p.ask(label)
	if err != nil {
		return "", err
	}
	return line, nil
}

// flagOrAsk returns the flag value, prompting when it was not given
func (p *prompter) flagOrAsk(cmd *cobra.Command, name, label string, hidden bool) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if v != "" {
		return v, nil
	}
	if hidden {
		return p.secret(label)
	}
	return p.ask(label)
}
