package cmd

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chainreactors/heuristics/pkg"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 0, ExitCode(context.Canceled))
	assert.Equal(t, 1, ExitCode(pkg.ErrNoReachableTarget))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("preflight: %w", pkg.ErrNoReachableTarget)))
	assert.Equal(t, 1, ExitCode(errors.New("open output file failed")))
}
