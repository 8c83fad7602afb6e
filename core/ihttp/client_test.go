package ihttp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyServer(t *testing.T, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func doOnce(t *testing.T, typ int, target string) (int, int64, int) {
	client := NewClient(&ClientConfig{Type: typ, Timeout: 5 * time.Second, Thread: 1})
	req, err := BuildRequest(context.Background(), typ, target, "", http.MethodGet, nil)
	require.NoError(t, err)
	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Close()
	return resp.StatusCode(), resp.ContentLength(), len(resp.Body())
}

func TestClientBodyLimit(t *testing.T) {
	body := strings.Repeat("a", 4096)

	cases := []struct {
		name    string
		limit   int64
		readMax int
	}{
		{"limited", 1024, 1024},
		{"zero", 0, len(body)},
		{"all", -1, len(body)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			old := DefaultMaxBodySize
			DefaultMaxBodySize = c.limit
			defer func() { DefaultMaxBodySize = old }()

			srv := newBodyServer(t, body)
			for _, typ := range []int{FAST, STANDARD} {
				status, length, read := doOnce(t, typ, srv.URL)
				assert.Equal(t, http.StatusOK, status)
				assert.EqualValues(t, len(body), length, "client %d", typ)
				assert.LessOrEqual(t, read, c.readMax, "client %d", typ)
				if c.limit <= 0 {
					assert.Equal(t, len(body), read, "client %d", typ)
				}
			}
		})
	}
}
