package platform

import (
	"context"

	"github.com/aretw0/cofiy/pkg/adapters/fs"
	"github.com/aretw0/cofiy/pkg/core"
)

// Init prepares the store at path and returns the repository. With
// WithRepository the injected repository is initialized instead.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initRepository(path, o)
}

func initRepository(path string, o *options) (core.Repository, error) {
	repo := o.repository
	if repo == nil {
		repo = newFS(path, o)
	}
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func newFS(path string, o *options) *fs.Repository {
	autoInit := o.bool("auto_init", true)
	readOnly := o.bool("read_only", false)
	devSafety := o.bool("dev_safety", true)
	fileName, _ := o.config["data_file"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	bypassSafety := readOnly || !devSafety
	useTemp := o.bool("temp_dir", false) || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataPath(path, useTemp)

	if o.logger != nil {
		switch {
		case useTemp:
			o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "resolved_path", resolved)
		case IsDevRun() && readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case IsDevRun():
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}

	return fs.NewRepository(fs.Config{
		Path:         resolved,
		FileName:     fileName,
		AutoInit:     autoInit,
		MustExist:    o.bool("must_exist", false) || (!autoInit && !useTemp),
		ReadOnly:     readOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
}
