package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogPublisherWritesEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pub := NewLogPublisher(zap.New(core))

	err := pub.Publish(context.Background(), "complaint.status_changed", map[string]string{"id": "c1"})
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "complaint.status_changed", logs.All()[0].ContextMap()["routing_key"])
	assert.NoError(t, pub.Close())
}

func TestLogPublisherRejectsUnmarshalable(t *testing.T) {
	pub := NewLogPublisher(nil)
	err := pub.Publish(context.Background(), "x", make(chan int))
	assert.Error(t, err)
}
