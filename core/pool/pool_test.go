package pool

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/chainreactors/heuristics/core/heuristics"
	"github.com/chainreactors/heuristics/core/ihttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWildcardPool(t *testing.T) {
	static := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hello world")
	}))
	defer static.Close()
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	client := ihttp.NewClient(&ihttp.ClientConfig{Type: ihttp.STANDARD, Timeout: 5 * time.Second, Thread: 2})
	h := heuristics.New(&heuristics.Config{}, client, nil, nil, nil)

	outwg := &sync.WaitGroup{}
	outputCh := make(chan *Result, 2)
	p, err := NewWildcardPool(context.Background(), &Config{Thread: 2, OutputCh: outputCh, Outwg: outwg}, h)
	require.NoError(t, err)
	defer p.Close()

	p.Run([]string{static.URL, notFound.URL})
	close(outputCh)

	var results []*Result
	for r := range outputCh {
		results = append(results, r)
		outwg.Done()
	}
	outwg.Wait()
	require.Len(t, results, 2)
	sort.Slice(results, func(i, j int) bool { return results[i].Number < results[j].Number })

	assert.Equal(t, static.URL, results[0].Target)
	require.True(t, results[0].IsWildcard())
	assert.EqualValues(t, 11, results[0].Filter.StaticSize)
	assert.Contains(t, results[0].String(), "wildcard static, size: 11")
	assert.Contains(t, results[0].ToJson(), `"filter":{"size":11,"dynamic":0}`)

	assert.Equal(t, notFound.URL, results[1].Target)
	assert.False(t, results[1].IsWildcard())
	assert.Contains(t, results[1].String(), "no wildcard")
	assert.NotContains(t, results[1].ToJson(), "filter")
}

func TestResultSummary(t *testing.T) {
	cases := []struct {
		filter *heuristics.WildcardFilter
		want   string
	}{
		{nil, "no wildcard"},
		{&heuristics.WildcardFilter{}, "wildcard, no usable filter"},
		{&heuristics.WildcardFilter{StaticSize: 42}, "wildcard static, size: 42"},
		{&heuristics.WildcardFilter{DynamicOffset: 7}, "wildcard dynamic, offset: 7 + url length"},
	}
	for _, c := range cases {
		r := &Result{Target: "http://example.com", Filter: c.filter}
		assert.Equal(t, "http://example.com - "+c.want+" [0ms]", r.String())
	}
}
