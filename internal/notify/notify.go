// Package notify delivers short text messages to chat channels. Delivery is
// best-effort: a Sink reports failure through its return value and logs,
// it never returns an error.
package notify

import "context"

type Sink interface {
	Send(ctx context.Context, text string) bool
}

// Nop drops every message.
type Nop struct{}

func (Nop) Send(context.Context, string) bool { return false }
