// Package lifecycle exposes store change events as a lifecycle.Source so a
// cofiy watcher can be plugged into a lifecycle-managed application.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/cofiy/pkg/core"
)

type storeSource struct {
	events <-chan core.Event
	types  map[core.EventType]bool
	out    chan lifecycle.Event
}

// NewSource bridges a store event channel to lifecycle events. When types is
// non-empty only those event types are forwarded.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	var filter map[core.EventType]bool
	if len(types) > 0 {
		filter = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			filter[t] = true
		}
	}
	return &storeSource{
		events: events,
		types:  filter,
		out:    make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.types != nil && !s.types[e.Type] {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
