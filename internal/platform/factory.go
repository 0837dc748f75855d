package platform

import (
	"github.com/aretw0/cofiy/pkg/bundle"
	"github.com/aretw0/cofiy/pkg/core"
)

// New wires a ready-to-use service: the store at path, the bundle codec and
// the logger.
//
//	svc, err := cofiy.New("./data", cofiy.WithLogger(logger))
func New(path string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := initRepository(path, o)
	if err != nil {
		return nil, err
	}

	codec := o.codec
	if codec == nil {
		codec = bundle.NewCodec(bundle.WithLogger(o.logger))
	}

	svc := core.NewService(repo, codec, o.logger)
	if size, ok := o.config["event_buffer"].(int); ok {
		svc.SetEventBuffer(size)
	}
	return svc, nil
}
