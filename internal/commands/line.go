package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/diogo/aichat/internal/models"
	"github.com/diogo/aichat/internal/render"
	"github.com/diogo/aichat/internal/transcript"
)

// lineMode runs the chat over plain lines: one message per input line, one
// "[time] Sender: text" line per transcript entry.
type lineMode struct {
	store     *transcript.Store
	in        io.Reader
	out       io.Writer
	locale    string
	indicator *spinner // optional typing indicator on stderr
}

func (l *lineMode) run(ctx context.Context) error {
	printed := 0
	flush := func() {
		msgs := l.store.Messages()
		for _, msg := range msgs[printed:] {
			if msg.IsAssistant() {
				fmt.Fprintln(l.out, l.formatLine(msg))
			}
		}
		printed = len(msgs)
	}
	flush()

	scanner := bufio.NewScanner(l.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "exit", "quit", "/exit", "/quit":
			return nil
		}

		if _, err := l.store.Submit(line); err != nil {
			return err
		}

		if err := l.wait(ctx); err != nil {
			return err
		}
		flush()

		if err := l.store.LastError(); err != nil {
			fmt.Fprintln(l.out, formatErrorMessage(err, "No reply"))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// wait blocks until the pending reply is applied, animating the indicator
func (l *lineMode) wait(ctx context.Context) error {
	if l.indicator == nil {
		return l.store.Wait(ctx)
	}

	l.indicator.start()
	err := l.store.Wait(ctx)
	l.indicator.stopOnce()
	<-l.indicator.done
	l.indicator = l.indicator.restart()
	return err
}

// formatLine renders a message as "[hh:mm] Sender: text"
func (l *lineMode) formatLine(msg models.Message) string {
	return fmt.Sprintf("[%s] %s: %s",
		render.FormatClock(msg.CreatedAt, l.locale),
		msg.Sender.Label(),
		msg.Text,
	)
}
