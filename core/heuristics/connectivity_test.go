package heuristics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/chainreactors/heuristics/core/ihttp"
	"github.com/chainreactors/heuristics/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadTarget(t *testing.T) string {
	srv := newHitServer(t, func(_ int64, w http.ResponseWriter, _ *http.Request) {})
	srv.Close()
	return srv.URL
}

func TestConnectivityTest(t *testing.T) {
	alive := newHitServer(t, func(_ int64, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	other := newHitServer(t, func(_ int64, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	dead := deadTarget(t)

	h := newTestHeuristics(&Config{Threads: 4}, nil, nil)
	targets := []string{dead, alive.URL, "not a url", other.URL + "/app"}
	good, err := h.ConnectivityTest(context.Background(), targets)
	require.NoError(t, err)
	assert.Equal(t, []string{alive.URL, other.URL + "/app"}, good)

	assert.Equal(t, []string{"/"}, alive.Paths())
	assert.Equal(t, []string{"/app/"}, other.Paths())
}

func TestConnectivityTestKeepsOrder(t *testing.T) {
	var targets []string
	for i := 0; i < 8; i++ {
		srv := newHitServer(t, func(_ int64, w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "ok")
		})
		targets = append(targets, srv.URL)
	}

	h := newTestHeuristics(&Config{Threads: 3}, nil, nil)
	good, err := h.ConnectivityTest(context.Background(), targets)
	require.NoError(t, err)
	assert.Equal(t, targets, good)
}

func TestConnectivityTestQueries(t *testing.T) {
	srv := newHitServer(t, func(_ int64, w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	queries, err := pkg.ParseQueries([]string{"token=abc"})
	require.NoError(t, err)

	h := newTestHeuristics(&Config{Queries: queries, AddSlash: true}, nil, nil)
	good, err := h.ConnectivityTest(context.Background(), []string{srv.URL})
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL}, good)
	// 空的word不会被补上额外的"/"
	assert.Equal(t, []string{"/"}, srv.Paths())
}

func TestConnectivityTestLargeBody(t *testing.T) {
	body := strings.Repeat("a", 150*1024)
	require.Greater(t, int64(len(body)), ihttp.DefaultMaxBodySize)

	for name, typ := range map[string]int{"standard": ihttp.STANDARD, "fast": ihttp.FAST} {
		t.Run(name, func(t *testing.T) {
			srv := newHitServer(t, func(_ int64, w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Length", strconv.Itoa(len(body)))
				fmt.Fprint(w, body)
			})
			h := New(&Config{}, newTestClient(typ), nil, nil, nil)

			good, err := h.ConnectivityTest(context.Background(), []string{srv.URL})
			require.NoError(t, err)
			assert.Equal(t, []string{srv.URL}, good)
		})
	}
}

func TestConnectivityTestNoneReachable(t *testing.T) {
	h := newTestHeuristics(&Config{}, nil, nil)

	good, err := h.ConnectivityTest(context.Background(), []string{deadTarget(t), deadTarget(t)})
	assert.Nil(t, good)
	assert.True(t, errors.Is(err, pkg.ErrNoReachableTarget))

	good, err = h.ConnectivityTest(context.Background(), nil)
	assert.Nil(t, good)
	assert.ErrorIs(t, err, pkg.ErrNoReachableTarget)
}

func TestConnectivityTestCanceled(t *testing.T) {
	srv := newHitServer(t, func(_ int64, w http.ResponseWriter, _ *http.Request) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newTestHeuristics(&Config{}, nil, nil)
	_, err := h.ConnectivityTest(ctx, []string{srv.URL})
	assert.ErrorIs(t, err, pkg.ErrNoReachableTarget)
	assert.EqualValues(t, 0, srv.Hits())
}
