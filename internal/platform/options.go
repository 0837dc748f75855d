package platform

import (
	"log/slog"

	"github.com/aretw0/cofiy/pkg/core"
)

// options holds the internal configuration for a cofiy store.
type options struct {
	repository core.Repository
	codec      core.Codec
	logger     *slog.Logger
	config     map[string]any
}

// Option defines a functional option for configuring cofiy.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		config: make(map[string]any),
	}
}

func (o *options) bool(key string, def bool) bool {
	if v, ok := o.config[key].(bool); ok {
		return v
	}
	return def
}

// WithLogger sets the logger for the service, the store and the codec.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a storage adapter (e.g. memory). The filesystem
// adapter is skipped and the path argument is ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithCodec replaces the bundle codec.
func WithCodec(codec core.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithDataFile sets the store document name inside the data directory.
// Its extension selects the format (.json, .yaml, .yml).
func WithDataFile(name string) Option {
	return func(o *options) {
		o.config["data_file"] = name
	}
}

// WithAutoInit creates the data directory and an empty document when they
// are missing. Enabled by default.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly refuses every write. The dev sandbox is bypassed since
// nothing can be damaged.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithForceTemp relocates the data directory into the temp dir.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
// By default the data directory is relocated into the temp dir there.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithEventBuffer sets the size of the watch channel. Zero means 100.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler receives errors raised while watching the store.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
