package heuristics

import (
	"context"
	"sync"

	"github.com/chainreactors/heuristics/pkg"
	"github.com/chainreactors/logs"
	"github.com/panjf2000/ants/v2"
)

type connectivityUnit struct {
	index  int
	target string
}

// ConnectivityTest 对每个target发送一次请求, 返回可以连接的target, 保持输入的顺序.
// 任意状态码的响应都视为可连接. 所有target都无法连接时返回 pkg.ErrNoReachableTarget.
func (h *Heuristics) ConnectivityTest(ctx context.Context, targets []string) ([]string, error) {
	logs.Log.Debugf("enter: connectivity_test(%v)", targets)

	reachable := make([]bool, len(targets))
	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(h.Threads, func(i interface{}) {
		defer wg.Done()
		unit := i.(*connectivityUnit)
		reachable[unit.index] = h.connect(ctx, unit.target)
	})
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	for i, target := range targets {
		wg.Add(1)
		if err := pool.Invoke(&connectivityUnit{index: i, target: target}); err != nil {
			wg.Done()
			logs.Log.Warnf("connectivity test %s: %s", target, err.Error())
		}
	}
	wg.Wait()

	var good []string
	for i, ok := range reachable {
		if ok {
			good = append(good, targets[i])
		}
	}

	if len(good) == 0 {
		logs.Log.Error(pkg.ErrNoReachableTarget.Error())
		return nil, pkg.ErrNoReachableTarget
	}

	logs.Log.Debugf("exit: connectivity_test -> %v", good)
	return good, nil
}

func (h *Heuristics) connect(ctx context.Context, target string) bool {
	u, err := pkg.FormatURL(target, "", h.AddSlash, h.Queries, "")
	if err != nil {
		logs.Log.Error(err.Error())
		return false
	}

	bl, err := h.request(ctx, u)
	if err != nil {
		logs.Log.Warn(err.Error())
		if !h.Quiet {
			logs.Log.Consolef("Could not connect to %s, skipping...\n", target)
		}
		return false
	}
	logs.Log.Debugf("%s connected, %s", target, bl.String())
	return true
}
