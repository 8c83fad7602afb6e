package pool

import (
	"encoding/json"
	"fmt"

	"github.com/chainreactors/heuristics/core/heuristics"
	"github.com/chainreactors/heuristics/pkg"
	"github.com/chainreactors/logs"
)

type Unit struct {
	number int
	target string
}

// Result 单个target的wildcard分类结果, Filter为nil表示没有发现wildcard
type Result struct {
	Number  int                        `json:"-"`
	Target  string                     `json:"target"`
	Filter  *heuristics.WildcardFilter `json:"filter,omitempty"`
	Spended int64                      `json:"spended"` // ms
}

func (r *Result) IsWildcard() bool {
	return r.Filter != nil
}

func (r *Result) summary(color bool) string {
	switch {
	case r.Filter == nil:
		return "no wildcard"
	case r.Filter.StaticSize != 0:
		return fmt.Sprintf("wildcard static, size: %s", pkg.ModuleColorizer(fmt.Sprint(r.Filter.StaticSize), color))
	case r.Filter.DynamicOffset != 0:
		return fmt.Sprintf("wildcard dynamic, offset: %s + url length", pkg.ModuleColorizer(fmt.Sprint(r.Filter.DynamicOffset), color))
	default:
		return "wildcard, no usable filter"
	}
}

func (r *Result) String() string {
	return fmt.Sprintf("%s - %s [%dms]", r.Target, r.summary(false), r.Spended)
}

func (r *Result) ColorString() string {
	tag := logs.GreenBold("[+]")
	if r.IsWildcard() {
		tag = pkg.StatusColorizer("WLD", true)
	}
	return fmt.Sprintf("%s %s - %s [%dms]", tag, logs.GreenLine(r.Target), r.summary(true), r.Spended)
}

func (r *Result) ToJson() string {
	bs, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(bs)
}
