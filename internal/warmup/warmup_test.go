package warmup

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecompass/advisor-go/internal/logger"
)

type countingCatalog struct {
	failures int
	calls    int
}

func (c *countingCatalog) Summary(context.Context) (string, error) {
	c.calls++
	if c.calls <= c.failures {
		return "", fmt.Errorf("catalog not ready")
	}
	return "CS 101 - Intro | Level 100 | 3 credits | Prereqs: None", nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func TestRunSucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	catalog := &countingCatalog{}
	err := Run(context.Background(), catalog, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.calls)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	catalog := &countingCatalog{failures: maxAttempts}
	err := Run(ctx, catalog, testLogger())
	require.Error(t, err)
	assert.Equal(t, 1, catalog.calls)
}
