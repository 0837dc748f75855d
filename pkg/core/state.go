package core

import (
	"context"

	"github.com/aretw0/introspection"
)

// ServiceState is the snapshot returned by Service.State.
type ServiceState struct {
	Repository     string `json:"repository"`
	WatchSupported bool   `json:"watch_supported"`
	EventBuffer    int    `json:"event_buffer"`
	Codec          bool   `json:"codec"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := ServiceState{
		Repository:  "none",
		EventBuffer: s.eventBufferSize,
		Codec:       s.codec != nil,
	}
	if s.repo == nil {
		return st
	}
	st.Repository = "custom"
	if comp, ok := s.repo.(introspection.Component); ok {
		st.Repository = comp.ComponentType()
	}
	_, st.WatchSupported = s.repo.(Watchable)
	return st
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

// StoreSummary counts what the store holds.
type StoreSummary struct {
	Companies   int `json:"companies"`
	Notes       int `json:"notes"`
	Attachments int `json:"attachments"`
}

// Summary loads the store and counts its records.
func (s *Service) Summary(ctx context.Context) StoreSummary {
	doc := s.LoadStore(ctx)
	sum := StoreSummary{Companies: len(doc.Companies)}
	for _, c := range doc.Companies {
		sum.Notes += len(c.Notes)
		sum.Attachments += c.AttachmentCount()
	}
	return sum
}

var (
	_ introspection.Introspectable = (*Service)(nil)
	_ introspection.Component      = (*Service)(nil)
)
