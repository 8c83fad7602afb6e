package pool

import (
	"context"
	"sync"
	"time"

	"github.com/chainreactors/heuristics/core/heuristics"
	"github.com/chainreactors/logs"
	"github.com/panjf2000/ants/v2"
)

// NewWildcardPool 对多个target并发进行wildcard分类, 单个target内的两次探测仍然是顺序的
func NewWildcardPool(ctx context.Context, config *Config, h *heuristics.Heuristics) (*WildcardPool, error) {
	if config.Thread <= 0 {
		config.Thread = 1
	}
	pctx, cancel := context.WithCancel(ctx)
	pool := &WildcardPool{
		Config:     config,
		heuristics: h,
		ctx:        pctx,
		Cancel:     cancel,
	}

	p, err := ants.NewPoolWithFunc(config.Thread, pool.Invoke)
	if err != nil {
		cancel()
		return nil, err
	}
	pool.pool = p
	return pool, nil
}

type WildcardPool struct {
	*Config
	Cancel     context.CancelFunc
	heuristics *heuristics.Heuristics
	ctx        context.Context
	pool       *ants.PoolWithFunc
	wg         sync.WaitGroup
}

func (pool *WildcardPool) Invoke(v interface{}) {
	defer pool.wg.Done()
	unit := v.(*Unit)

	ctx := pool.ctx
	if pool.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(pool.ctx, pool.Timeout)
		defer cancel()
	}

	start := time.Now()
	filter := pool.heuristics.WildcardTest(ctx, unit.target)
	pool.putToOutput(&Result{
		Number:  unit.number,
		Target:  unit.target,
		Filter:  filter,
		Spended: time.Since(start).Milliseconds(),
	})
}

// Run 阻塞直到所有target分类完成或ctx被取消
func (pool *WildcardPool) Run(targets []string) {
	for i, target := range targets {
		select {
		case <-pool.ctx.Done():
			logs.Log.Debugf("wildcard pool canceled, %d targets left", len(targets)-i)
			pool.wg.Wait()
			return
		default:
		}

		pool.wg.Add(1)
		if err := pool.pool.Invoke(&Unit{number: i, target: target}); err != nil {
			pool.wg.Done()
			logs.Log.Error(err.Error())
		}
	}
	pool.wg.Wait()
}

func (pool *WildcardPool) Close() {
	pool.pool.Release()
	pool.Cancel()
}

func (pool *WildcardPool) putToOutput(r *Result) {
	if pool.OutputCh == nil {
		return
	}
	if pool.Outwg != nil {
		pool.Outwg.Add(1)
	}
	pool.OutputCh <- r
}
