package heuristics

import (
	"context"

	"github.com/chainreactors/heuristics/core/baseline"
	"github.com/chainreactors/heuristics/pkg"
	"github.com/chainreactors/logs"
)

// WildcardTest 判断target是否存在wildcard响应, 存在时返回对应的过滤条件
//
// 第一次请求使用1个uuid长度的随机路径, 命中有效状态码则说明存在wildcard.
// 第二次请求使用3个uuid长度的路径, 与第一次相差 2*32 个字符:
// 响应长度也恰好多出64, 说明路径被回显到了固定模板中(dynamic);
// 响应长度不变, 说明wildcard页面大小固定(static).
// 返回nil表示没有发现wildcard, 返回零值表示存在wildcard但无法进一步区分.
func (h *Heuristics) WildcardTest(ctx context.Context, target string) *WildcardFilter {
	logs.Log.Debugf("enter: wildcard_test(%s)", target)
	if h.DontFilter {
		// dont-filter 模式下不需要检测
		logs.Log.Debug("exit: wildcard_test -> nil")
		return nil
	}

	first := h.makeWildcardRequest(ctx, target, 1)
	if first == nil {
		logs.Log.Debug("exit: wildcard_test -> nil")
		return nil
	}
	h.incr(1)

	wildcard := &WildcardFilter{}
	wcLength := first.Length
	if wcLength == 0 {
		// wildcard存在但body为空, 无法也不需要基于长度过滤
		logs.Log.Logf(pkg.LogVerbose, "%s wildcard response has empty body, nothing to filter", target)
		return wildcard
	}

	second := h.makeWildcardRequest(ctx, target, 3)
	if second == nil {
		h.incr(2)
		logs.Log.Logf(pkg.LogVerbose, "%s second wildcard probe got nothing, wildcard left uncharacterized", target)
		return wildcard
	}
	h.incr(1)

	wc2Length := second.Length
	if wc2Length == wcLength+UUIDLength*2 {
		// 第二次的长度恰好多出了请求路径的差值, 即路径被回显到了固定模板中, 类似自定义404
		urlLen := first.PathLength()
		if urlLen > wcLength {
			logs.Log.Debugf("%s url length %d larger than response length %d, skip dynamic filter", target, urlLen, wcLength)
			return wildcard
		}
		wildcard.DynamicOffset = wcLength - urlLen
		if !h.Quiet {
			h.report(&message{kind: wildcardDynamic, length: wildcard.DynamicOffset})
		}
	} else if wcLength == wc2Length {
		wildcard.StaticSize = wcLength
		if !h.Quiet {
			h.report(&message{kind: wildcardStatic, length: wcLength})
		}
	} else {
		logs.Log.Logf(pkg.LogVerbose, "%s wildcard length %d -> %d matches no known pattern", target, wcLength, wc2Length)
	}

	logs.Log.Debugf("exit: wildcard_test -> %+v", *wildcard)
	return wildcard
}

// makeWildcardRequest 在target后拼接一个随机路径并请求, 随机路径在目标上不应该存在.
// 响应状态码命中StatusCodes时视为wildcard并返回, 3xx时会额外展示跳转的目标.
func (h *Heuristics) makeWildcardRequest(ctx context.Context, target string, length int) *baseline.Baseline {
	unique := UniqueString(length)

	nonexistent, err := pkg.FormatURL(target, unique, h.AddSlash, h.Queries, "")
	if err != nil {
		logs.Log.Error(err.Error())
		return nil
	}

	bl, err := h.request(ctx, nonexistent)
	if err != nil {
		logs.Log.Warn(err.Error())
		return nil
	}

	if !pkg.IntsContains(h.StatusCodes, bl.Status) {
		logs.Log.Debugf("%s got %d, not a wildcard", bl.UrlString, bl.Status)
		return nil
	}

	// found a wildcard response
	if !h.Quiet && !h.shouldFilter(bl) {
		h.report(&message{
			kind:   wildcardFound,
			length: bl.Length,
			status: bl.Status,
			url:    bl.UrlString,
			urlLen: bl.PathLength(),
		})
		if bl.IsRedirection() && bl.RedirectURL != "" {
			h.report(&message{
				kind:     wildcardRedirect,
				length:   bl.Length,
				url:      bl.UrlString,
				location: bl.RedirectURL,
			})
		}
	}
	return bl
}
