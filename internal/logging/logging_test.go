package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cofiy/internal/logging"
)

func TestNew(t *testing.T) {
	t.Run("Info By Default", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer := logging.New(&buf, logging.Options{})
		defer closer.Close()

		logger.Debug("hidden")
		logger.Info("shown", "company", "c1")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "company=c1")
	})

	t.Run("Verbose With File", func(t *testing.T) {
		var buf bytes.Buffer
		file := filepath.Join(t.TempDir(), "cofiy.log")
		logger, closer := logging.New(&buf, logging.Options{Verbose: true, File: file, MaxSizeMB: 1})

		logger.Debug("debug line")
		require.NoError(t, closer.Close())

		assert.Contains(t, buf.String(), "debug line")
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), "debug line")
	})
}
