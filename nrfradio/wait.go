package nrfradio

import "context"

// waitAny blocks until the first of events occurs on p, or ctx is cancelled, and reports
// which event fired. The WaitEvent calls for the events it doesn't pick are cancelled
// through ctx when waitAny returns; an event that occurs after that is not consumed here,
// and the next waitAny call (e.g. the next pass of Send's CCA retry loop) waits afresh.
func waitAny(ctx context.Context, p Peripheral, events ...Event) (Event, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		ev  Event
		err error
	}
	results := make(chan result, len(events))
	for _, ev := range events {
		ev := ev
		go func() {
			err := p.WaitEvent(ctx, ev)
			results <- result{ev: ev, err: err}
		}()
	}

	r := <-results
	return r.ev, r.err
}
