package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupIsNoopWithoutEndpoint(t *testing.T) {
	for _, cfg := range []*Config{nil, {ServiceName: "partygame"}} {
		shutdown, err := Setup(context.Background(), cfg)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.NoError(t, shutdown(ctx))
	}
}

func TestSetupWithEndpoint(t *testing.T) {
	// non-routable, nothing is exported because no spans are started
	shutdown, err := Setup(context.Background(), &Config{Endpoint: "http://192.0.2.1:4318"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
