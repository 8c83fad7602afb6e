package sdk

import (
	"context"
	"fmt"

	"github.com/chainreactors/heuristics/core"
	"github.com/chainreactors/heuristics/core/heuristics"
	"github.com/chainreactors/heuristics/core/pool"
)

// Engine wildcard探测与连通性检测的SDK
type Engine struct {
	Option *core.Option // 默认配置选项
}

// NewEngine opt为nil时使用DefaultConfig
func NewEngine(opt *core.Option) *Engine {
	if opt == nil {
		opt = DefaultConfig()
	}
	return &Engine{
		Option: opt,
	}
}

// DefaultConfig 基于 core.Option 的默认值, SDK 场景下默认静默且不显示进度条
func DefaultConfig() *core.Option {
	return core.NewDefaultOption()
}

// SetThreads 设置线程数
func (e *Engine) SetThreads(threads int) {
	e.Option.Threads = threads
}

// SetTimeout 设置超时时间（秒）
func (e *Engine) SetTimeout(timeout int) {
	e.Option.Timeout = timeout
}

// SetStatusCodes 设置视为命中的状态码, 格式与 -s 相同
func (e *Engine) SetStatusCodes(status string) {
	e.Option.StatusCodes = status
}

func (e *Engine) newRunner(urls []string) (*core.Runner, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("urls cannot be empty")
	}

	// 克隆配置避免修改原始配置
	opt := *e.Option
	opt.URL = urls

	err := opt.Prepare()
	if err != nil {
		return nil, fmt.Errorf("prepare config failed: %w", err)
	}

	runner, err := opt.NewRunner()
	if err != nil {
		return nil, fmt.Errorf("create runner failed: %w", err)
	}
	return runner, nil
}

// Connectivity 返回可以连接的url, 全部无法连接时返回 pkg.ErrNoReachableTarget
func (e *Engine) Connectivity(ctx context.Context, urls []string) ([]string, error) {
	runner, err := e.newRunner(urls)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	return runner.NewHeuristics(nil).ConnectivityTest(ctx, runner.Tasks.Targets())
}

// Wildcard 对单个url进行wildcard分类, 返回nil表示没有发现wildcard
func (e *Engine) Wildcard(ctx context.Context, target string) (*heuristics.WildcardFilter, error) {
	runner, err := e.newRunner([]string{target})
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	return runner.NewHeuristics(nil).WildcardTest(ctx, runner.Tasks.Targets()[0]), nil
}

// Run 完整流程: 连通性检测后对所有可连接的url进行wildcard分类, 结果与输入顺序一致
func (e *Engine) Run(ctx context.Context, urls []string) ([]*pool.Result, error) {
	runner, err := e.newRunner(urls)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx)
}
