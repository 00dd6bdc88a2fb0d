// Package notifier delivers outbound alert text to operators. Every
// gateway swallows transport errors: Send reports success as a bool and
// never panics or returns an error, so a messaging outage can never
// block data entry or a reminder cycle.
package notifier

import "context"

// Gateway is the outbound alert capability consumed by the reminder
// orchestrator and the API layer.
type Gateway interface {
	Send(ctx context.Context, text string) bool
}

// Fanout delivers to every configured gateway. It reports true only
// when all deliveries succeeded; each gateway is attempted regardless
// of earlier failures.
type Fanout []Gateway

func (f Fanout) Send(ctx context.Context, text string) bool {
	ok := true
	for _, g := range f {
		if !g.Send(ctx, text) {
			ok = false
		}
	}
	return ok
}
