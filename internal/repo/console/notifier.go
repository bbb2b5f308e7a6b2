package console

import (
	"context"
	"fmt"
	"io"
)

// Notifier prints messages instead of posting them. It backs report --debug.
type Notifier struct {
	w io.Writer
}

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) PostMessage(_ context.Context, channel, text string) error {
	if _, err := fmt.Fprintf(n.w, "--- #%s ---\n%s\n", channel, text); err != nil {
		return fmt.Errorf("failed to print message: %w", err)
	}
	return nil
}
