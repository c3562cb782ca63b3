package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopKeeper struct{}

func (noopKeeper) KeepAlive(context.Context) error { return nil }

type noopWarmer struct{}

func (noopWarmer) Warm(context.Context) (int, error) { return 114, nil }

func TestStartCron(t *testing.T) {
	c, err := StartCron(noopKeeper{}, noopWarmer{})
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 2)
}
