package heuristics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/chainreactors/heuristics/core/baseline"
	"github.com/chainreactors/heuristics/core/ihttp"
	"github.com/chainreactors/heuristics/pkg"
	"github.com/chainreactors/logs"
)

// Config 进程启动时构造一次, 之后只读
type Config struct {
	StatusCodes []int
	Method      string
	Headers     http.Header
	AddSlash    bool
	Queries     url.Values
	Threads     int
	Quiet       bool
	DontFilter  bool
	SaveOutput  bool
	Color       bool
}

// Filter 判断一个响应是否应该被隐藏, 只影响提示信息的输出, 不影响wildcard的判定
type Filter interface {
	ShouldFilter(bl *baseline.Baseline) bool
}

// Bar 进度条, *mpb.Bar 满足该接口
type Bar interface {
	IncrBy(n int)
}

func New(c *Config, client *ihttp.Client, filter Filter, tx *Dispatcher, bar Bar) *Heuristics {
	config := *c
	if config.Method == "" {
		config.Method = http.MethodGet
	}
	if config.StatusCodes == nil {
		config.StatusCodes = pkg.DefaultStatusCodes
	}
	if config.Threads <= 0 {
		config.Threads = 1
	}
	return &Heuristics{
		Config: &config,
		client: client,
		filter: filter,
		tx:     tx,
		bar:    bar,
	}
}

type Heuristics struct {
	*Config
	client *ihttp.Client
	filter Filter
	tx     *Dispatcher
	bar    Bar
}

// request 发送一次请求并把响应收集为baseline, 响应在返回前已经释放
func (h *Heuristics) request(ctx context.Context, u *url.URL) (*baseline.Baseline, error) {
	req, err := ihttp.BuildRequest(ctx, h.client.Type, u.String(), "", h.Method, h.Headers)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrUrlError, err.Error())
	}
	uri, host := req.URI(), req.Host()

	start := time.Now()
	resp, err := h.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s, %s", pkg.ErrRequestFailed, uri, err.Error())
	}
	defer resp.Close()

	bl := baseline.NewBaseline(uri, host, resp)
	bl.Spended = time.Since(start).Milliseconds()
	return bl, nil
}

func (h *Heuristics) shouldFilter(bl *baseline.Baseline) bool {
	if h.filter == nil {
		return false
	}
	return h.filter.ShouldFilter(bl)
}

// report 输出到终端, 同时交给文件输出处理
func (h *Heuristics) report(msg *message) {
	logs.Log.Console(msg.render(h.Color))
	h.tx.TrySend(msg.render(false), h.SaveOutput)
}

func (h *Heuristics) incr(n int) {
	if h.bar != nil {
		h.bar.IncrBy(n)
	}
}
