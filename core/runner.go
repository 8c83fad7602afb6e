package core

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/chainreactors/heuristics/core/filter"
	"github.com/chainreactors/heuristics/core/heuristics"
	"github.com/chainreactors/heuristics/core/ihttp"
	"github.com/chainreactors/heuristics/core/pool"
	"github.com/chainreactors/logs"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Runner struct {
	*Option

	Config      *heuristics.Config
	Client      *ihttp.Client
	Filter      *filter.Filter
	Tasks       *TaskGenerator
	Dispatcher  *heuristics.Dispatcher
	FileHandler *FileHandler
	Progress    *mpb.Progress
	Color       bool

	bar   *mpb.Bar
	outwg sync.WaitGroup
	once  sync.Once
}

// NewHeuristics bar为nil时不更新进度
func (r *Runner) NewHeuristics(bar heuristics.Bar) *heuristics.Heuristics {
	var f heuristics.Filter
	if !r.Filter.IsEmpty() {
		f = r.Filter
	}
	return heuristics.New(r.Config, r.Client, f, r.Dispatcher, bar)
}

// Run 先过滤掉无法连接的target, 再对剩余的target并发进行wildcard分类.
// 所有target都无法连接时返回 pkg.ErrNoReachableTarget
func (r *Runner) Run(ctx context.Context) ([]*pool.Result, error) {
	if r.FileHandler != nil {
		r.FileHandler.Run()
	}
	defer r.Close()

	targets := r.Tasks.Targets()
	logs.Log.Importantf("connectivity test: %d targets, %d threads", len(targets), r.Config.Threads)
	good, err := r.NewHeuristics(nil).ConnectivityTest(ctx, targets)
	if err != nil {
		return nil, err
	}
	if len(good) != len(targets) {
		logs.Log.Importantf("%d of %d targets reachable", len(good), len(targets))
	}

	var bar heuristics.Bar
	if r.newBar(len(good) * 2) {
		bar = r.bar
	}

	outputCh := make(chan *pool.Result, len(good))
	wildcardPool, err := pool.NewWildcardPool(ctx, &pool.Config{
		Thread:   r.Config.Threads,
		OutputCh: outputCh,
		Outwg:    &r.outwg,
	}, r.NewHeuristics(bar))
	if err != nil {
		return nil, err
	}
	defer wildcardPool.Close()

	var results []*pool.Result
	done := make(chan struct{})
	go func() {
		for result := range outputCh {
			results = append(results, result)
			r.Output(result)
			r.outwg.Done()
		}
		close(done)
	}()

	wildcardPool.Run(good)
	r.outwg.Wait()
	close(outputCh)
	<-done

	if r.bar != nil {
		if !r.bar.Completed() {
			r.bar.Abort(false)
		}
		r.bar.Wait()
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Number < results[j].Number
	})
	return results, ctx.Err()
}

// Close 等待文件输出结束, 可以重复调用
func (r *Runner) Close() {
	r.once.Do(func() {
		if r.FileHandler != nil {
			r.FileHandler.Wait()
			logs.Log.Importantf("wildcard messages saved to %s", r.FileHandler.Filename())
		} else {
			r.Dispatcher.Close()
		}
		if r.Progress != nil {
			r.Progress.Wait()
			logs.Log.SetOutput(os.Stdout)
		}
	})
}

func (r *Runner) newBar(total int) bool {
	if r.Progress == nil || total == 0 {
		return false
	}

	prompt := "wildcard progressive:"
	r.bar = r.Progress.AddBar(int64(total),
		mpb.BarFillerClearOnComplete(),
		mpb.PrependDecorators(
			decor.Name(prompt, decor.WC{W: len(prompt) + 1, C: decor.DindentRight}),
			decor.OnComplete(
				decor.Counters(0, "% d/% d"), " done!",
			),
		),
		mpb.AppendDecorators(
			decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 4}),
		),
	)
	return true
}

// Output 结果输出到终端, 同时以纯文本交给文件输出
func (r *Runner) Output(result *pool.Result) {
	var out string
	if r.Option.Json {
		out = result.ToJson()
	} else if r.Color {
		out = result.ColorString()
	} else {
		out = result.String()
	}
	logs.Log.Console(out + "\n")

	if r.Option.Json {
		r.Dispatcher.TrySend(out+"\n", r.Config.SaveOutput)
	} else {
		r.Dispatcher.TrySend(result.String()+"\n", r.Config.SaveOutput)
	}
}
