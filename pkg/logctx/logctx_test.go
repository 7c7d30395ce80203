package logctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return zap.New(core).Sugar(), logs
}

func TestFromCtx_PrefersAttachedLogger(t *testing.T) {
	base, _ := newObservedLogger()
	attached, logs := newObservedLogger()

	ctx := WithLogger(context.Background(), attached)
	FromCtx(ctx, base).Infow("hello")

	require.Equal(t, 1, logs.Len())
}

func TestFromCtx_EnrichesWithTraceAndUser(t *testing.T) {
	base, logs := newObservedLogger()

	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithUserID(ctx, "admin-1")
	FromCtx(ctx, base).Infow("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "trace-1", fields["trace_id"])
	require.Equal(t, "admin-1", fields["user_id"])
}

func TestFromCtx_NilAndEmptyContext(t *testing.T) {
	base, logs := newObservedLogger()

	FromCtx(nil, base).Infow("one")
	FromCtx(context.Background(), base).Infow("two")

	require.Equal(t, 2, logs.Len())
	require.Empty(t, logs.All()[0].Context)
	require.Empty(t, logs.All()[1].Context)
}

func TestUserID(t *testing.T) {
	require.Empty(t, UserID(context.Background()))
	require.Equal(t, "admin-1", UserID(WithUserID(context.Background(), "admin-1")))
}
