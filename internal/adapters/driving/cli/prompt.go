package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter reads answers for one command run. A single buffered reader is
// shared so piped input spanning several prompts is not lost.
type prompter struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{cmd: cmd, reader: bufio.NewReader(cmd.InOrStdin())}
}

// Line prints label and reads one trimmed line.
func (p *prompter) Line(label string) string {
	p.cmd.PrintErr(label)
	return readLine(p.reader)
}

// Secret reads a PIN without echo when stdin is a terminal.
func (p *prompter) Secret(label string) string {
	p.cmd.PrintErr(label)
	if f, ok := p.cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		p.cmd.PrintErrln()
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(p.reader)
}

// Choose lists options and returns the chosen index, or def on empty or invalid input.
func (p *prompter) Choose(label string, options []string, def int) int {
	for i, o := range options {
		p.cmd.PrintErrf("  %d. %s\n", i+1, o)
	}
	input := p.Line(fmt.Sprintf("%s [%d]: ", label, def+1))
	return parseChoice(input, len(options), def+1) - 1
}

func readLine(reader *bufio.Reader) string {
	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
