package contextutil_test

import (
	"context"
	"testing"

	"hris-portal/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestID(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", contextutil.GetRequestID(ctx))
	assert.Empty(t, contextutil.GetRequestID(context.Background()))
}

func TestPrincipal(t *testing.T) {
	_, ok := contextutil.GetPrincipal(context.Background())
	assert.False(t, ok)

	want := contextutil.Principal{Kind: contextutil.PrincipalEmployee, ID: "e-1", CompanyID: "c-1"}
	got, ok := contextutil.GetPrincipal(contextutil.WithPrincipal(context.Background(), want))
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestGetLogger(t *testing.T) {
	fallback := zap.NewExample()
	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	scoped := zap.NewNop()
	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, fallback))
}
