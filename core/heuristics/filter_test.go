package heuristics

import (
	"encoding/json"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueString(t *testing.T) {
	hex := regexp.MustCompile(`^[0-9a-f]*$`)
	for n := 0; n < 10; n++ {
		s := UniqueString(n)
		assert.Len(t, s, n*UUIDLength)
		assert.Regexp(t, hex, s)
	}
	assert.NotEqual(t, UniqueString(1), UniqueString(1))
}

func TestWildcardFilterMatch(t *testing.T) {
	u, err := url.Parse("http://example.com/admin/login")
	require.NoError(t, err)

	static := &WildcardFilter{StaticSize: 120}
	assert.True(t, static.Match(120, u))
	assert.False(t, static.Match(121, u))

	dynamic := &WildcardFilter{DynamicOffset: 100}
	assert.True(t, dynamic.Match(105, u))
	assert.False(t, dynamic.Match(100, u))

	assert.False(t, (&WildcardFilter{}).Match(0, u))

	var none *WildcardFilter
	assert.False(t, none.Match(120, u))
}

func TestWildcardFilterJson(t *testing.T) {
	bs, err := json.Marshal(&WildcardFilter{StaticSize: 11, DynamicOffset: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":11,"dynamic":0}`, string(bs))
	assert.True(t, (&WildcardFilter{}).IsZero())
}
