package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"installbay/internal/tracing"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := tracing.Init(context.Background(), "installbay", "test", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
