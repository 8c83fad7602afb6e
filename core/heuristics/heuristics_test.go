package heuristics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chainreactors/heuristics/core/baseline"
	"github.com/chainreactors/heuristics/core/ihttp"
)

type countBar struct {
	n int64
}

func (b *countBar) IncrBy(n int) {
	atomic.AddInt64(&b.n, int64(n))
}

func (b *countBar) Count() int64 {
	return atomic.LoadInt64(&b.n)
}

type filterAll struct{}

func (filterAll) ShouldFilter(*baseline.Baseline) bool { return true }

// hitServer 记录请求次数与路径, handler决定响应内容
type hitServer struct {
	*httptest.Server
	mu    sync.Mutex
	paths []string
	hits  int64
}

func newHitServer(t *testing.T, handler func(n int64, w http.ResponseWriter, r *http.Request)) *hitServer {
	s := &hitServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&s.hits, 1)
		s.mu.Lock()
		s.paths = append(s.paths, r.URL.Path)
		s.mu.Unlock()
		handler(n, w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *hitServer) Hits() int64 {
	return atomic.LoadInt64(&s.hits)
}

func (s *hitServer) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

func lastSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	return path[strings.LastIndex(path, "/")+1:]
}

func newTestClient(typ int) *ihttp.Client {
	return ihttp.NewClient(&ihttp.ClientConfig{
		Type:    typ,
		Timeout: 5 * time.Second,
		Thread:  4,
	})
}

func newTestHeuristics(c *Config, tx *Dispatcher, bar Bar) *Heuristics {
	return New(c, newTestClient(ihttp.STANDARD), nil, tx, bar)
}

// drain Stop之后读取dispatcher中的所有消息
func drain(d *Dispatcher) []string {
	d.Stop()
	var msgs []string
	for msg := range d.C() {
		msgs = append(msgs, msg)
	}
	return msgs
}
