package heuristics

import (
	"net/url"

	"github.com/chainreactors/heuristics/pkg"
)

// WildcardFilter 描述一个目标的wildcard响应特征
//
// StaticSize 非0时, 任何content length等于它的响应都视为wildcard.
// DynamicOffset 非0时, content length等于 DynamicOffset + path长度 的响应视为wildcard,
// 即服务端把请求的路径回显到了一个固定的模板中.
// 两者都为0表示没有可用的过滤条件.
type WildcardFilter struct {
	StaticSize    uint64 `json:"size"`
	DynamicOffset uint64 `json:"dynamic"`
}

func (f *WildcardFilter) IsZero() bool {
	return f.StaticSize == 0 && f.DynamicOffset == 0
}

// Match 判断一个响应是否为wildcard噪音
func (f *WildcardFilter) Match(contentLength uint64, u *url.URL) bool {
	if f == nil {
		return false
	}
	if f.StaticSize != 0 && contentLength == f.StaticSize {
		return true
	}
	if f.DynamicOffset != 0 && contentLength == f.DynamicOffset+pkg.URLPathLength(u) {
		return true
	}
	return false
}
