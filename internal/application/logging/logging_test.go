package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/rareships-go/internal/application/logging"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
)

func TestSlogLogger_WritesJSONWithMetadata(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewSlogLogger(&buf, "INFO", "json")
	require.NoError(t, err)

	logger.Log(logging.LevelInfo, "ship settled", map[string]interface{}{"ship_id": 7})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ship settled", record["msg"])
	assert.Equal(t, float64(7), record["ship_id"])
}

func TestSlogLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewSlogLogger(&buf, "WARNING", "text")
	require.NoError(t, err)

	logger.Log(logging.LevelInfo, "quiet", nil)
	assert.Empty(t, buf.String())

	logger.Log(logging.LevelError, "loud", nil)
	assert.Contains(t, buf.String(), "loud")
}

func TestNewSlogLogger_RejectsUnknownSettings(t *testing.T) {
	_, err := logging.NewSlogLogger(&bytes.Buffer{}, "LOUD", "json")
	assert.Error(t, err)

	_, err = logging.NewSlogLogger(&bytes.Buffer{}, "INFO", "xml")
	assert.Error(t, err)
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())
	require.NotNil(t, logger)
	logger.Log(logging.LevelError, "dropped", nil)
}

type recordingLogger struct {
	levels   []string
	messages []string
}

func (r *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	r.levels = append(r.levels, level)
	r.messages = append(r.messages, message)
}

func TestRequestLoggingMiddleware(t *testing.T) {
	rec := &recordingLogger{}
	ctx := logging.WithLogger(context.Background(), rec)
	mw := logging.RequestLoggingMiddleware()

	_, _ = mw(ctx, struct{}{}, func(context.Context, mediator.Request) (mediator.Response, error) {
		return nil, nil
	})
	_, err := mw(ctx, struct{}{}, func(context.Context, mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	})

	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{logging.LevelDebug, logging.LevelError}, rec.levels)
}
