package filter

import (
	"github.com/chainreactors/heuristics/core/baseline"
	"github.com/chainreactors/heuristics/pkg"
	"github.com/chainreactors/logs"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// NewFilter 构造用于隐藏响应的过滤器, exp为空时不使用表达式过滤
func NewFilter(status []int, sizes []uint64, exp string) (*Filter, error) {
	f := &Filter{
		Status: status,
		Sizes:  sizes,
	}
	if exp != "" {
		program, err := expr.Compile(exp)
		if err != nil {
			return nil, err
		}
		f.FilterExpr = program
	}
	return f, nil
}

// Filter 命中任意一条规则的响应都不会被展示
type Filter struct {
	Status     []int
	Sizes      []uint64
	FilterExpr *vm.Program
}

func (f *Filter) ShouldFilter(bl *baseline.Baseline) bool {
	if f == nil || bl == nil {
		return false
	}

	if pkg.IntsContains(f.Status, bl.Status) {
		logs.Log.Debugf("%s filtered by status %d", bl.UrlString, bl.Status)
		return true
	}

	for _, size := range f.Sizes {
		if bl.Length == size {
			logs.Log.Debugf("%s filtered by size %d", bl.UrlString, size)
			return true
		}
	}

	if f.FilterExpr != nil && pkg.CompareWithExpr(f.FilterExpr, map[string]interface{}{"current": bl}) {
		logs.Log.Debugf("%s filtered by expr", bl.UrlString)
		return true
	}
	return false
}

func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.Status) == 0 && len(f.Sizes) == 0 && f.FilterExpr == nil)
}
