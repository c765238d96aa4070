package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderxuhq/chat-with-page-sub000/mock"
	cpslog "github.com/wanderxuhq/chat-with-page-sub000/slog"
)

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "Rising water", nil
			},
		}

		conv := cpslog.NewLoggingConverter(inner, logger)
		md, err := conv.Convert("<p>Rising water</p>")

		require.NoError(t, err)
		assert.Equal(t, "Rising water", md)
		output := buf.String()
		assert.Contains(t, output, "msg=convert")
		assert.Contains(t, output, "bytes=19")
		assert.Contains(t, output, "markdownBytes=12")
	})

	t.Run("stays quiet at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", nil
			},
		}

		_, err := cpslog.NewLoggingConverter(inner, logger).Convert("<p></p>")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
