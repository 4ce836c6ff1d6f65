package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConfirmPrompt is asked once per post, before any network traffic,
// with a human-readable summary of what would be submitted.
type ConfirmPrompt interface {
	Confirm(summary string) (bool, error)
}

// AutoConfirm approves every post. Used in serve mode and by the feed
// watcher, where there is no human to ask.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(string) (bool, error) { return true, nil }

// TerminalPrompt asks y/N on the terminal.
type TerminalPrompt struct {
	In  io.Reader
	Out io.Writer
}

func (p *TerminalPrompt) Confirm(summary string) (bool, error) {
	fmt.Fprintf(p.Out, "post %q to Bluesky? [y/N] ", summary)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
