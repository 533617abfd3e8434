package metrics

import (
	"context"
	"time"

	"github.com/skysift/skysift/core/events"
	coremetrics "github.com/skysift/skysift/core/metrics"
	"github.com/skysift/skysift/core/pipeline"
	"github.com/skysift/skysift/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// pipeline events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.NormalizationSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.DepartureNormalized:
					_ = sink.RecordNormalized(coremetrics.NormalizedEvent{
						Source:    e.Source,
						Departure: e.Departure,
						Time:      time.Now(),
					})
				case events.RecordRejected:
					_ = sink.RecordRejected(coremetrics.RejectedEvent{
						Source: e.Source,
						Token:  e.Token,
						Kind:   pipeline.RejectKind(e.Err),
						Time:   time.Now(),
					})
				}
			}
		}
	}()
}
