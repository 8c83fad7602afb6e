package filter

import (
	"testing"

	"github.com/chainreactors/heuristics/core/baseline"
	"github.com/chainreactors/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBaseline(status int, length uint64) *baseline.Baseline {
	return &baseline.Baseline{
		SprayResult: &parsers.SprayResult{
			UrlString: "http://example.com/aaa",
			Status:    status,
			IsValid:   true,
		},
		Length: length,
	}
}

func TestFilterStatus(t *testing.T) {
	f, err := NewFilter([]int{404, 500}, nil, "")
	require.NoError(t, err)

	assert.True(t, f.ShouldFilter(newBaseline(404, 10)))
	assert.True(t, f.ShouldFilter(newBaseline(500, 10)))
	assert.False(t, f.ShouldFilter(newBaseline(200, 10)))
}

func TestFilterSize(t *testing.T) {
	f, err := NewFilter(nil, []uint64{0, 1337}, "")
	require.NoError(t, err)

	assert.True(t, f.ShouldFilter(newBaseline(200, 1337)))
	assert.True(t, f.ShouldFilter(newBaseline(200, 0)))
	assert.False(t, f.ShouldFilter(newBaseline(200, 1338)))
}

func TestFilterExpr(t *testing.T) {
	f, err := NewFilter(nil, nil, "current.Length > 100")
	require.NoError(t, err)

	assert.True(t, f.ShouldFilter(newBaseline(200, 101)))
	assert.False(t, f.ShouldFilter(newBaseline(200, 100)))

	_, err = NewFilter(nil, nil, "current.Length >")
	assert.Error(t, err)
}

func TestFilterEmpty(t *testing.T) {
	f, err := NewFilter(nil, nil, "")
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
	assert.False(t, f.ShouldFilter(newBaseline(404, 0)))

	var none *Filter
	assert.True(t, none.IsEmpty())
	assert.False(t, none.ShouldFilter(newBaseline(404, 0)))
}
