package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneration_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	for _, g := range []*Generation{nil, NewGeneration(nil, "cache:gen")} {
		require.NoError(t, g.Bump(ctx))
		n, err := g.Current(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	}
}
