package heuristics

import (
	"fmt"
	"strconv"

	"github.com/chainreactors/heuristics/pkg"
)

type messageKind int

const (
	wildcardFound messageKind = iota
	wildcardRedirect
	wildcardDynamic
	wildcardStatic
)

// message 同一条提示信息需要分别渲染为终端的彩色版本与文件中的纯文本版本
type message struct {
	kind     messageKind
	length   uint64
	status   int
	url      string
	urlLen   uint64
	location string
}

func (m *message) render(color bool) string {
	wld := pkg.StatusColorizer("WLD", color)
	switch m.kind {
	case wildcardFound:
		return fmt.Sprintf("%s %10d Got %s for %s (url length: %d)\n",
			wld, m.length, pkg.StatusColorizer(strconv.Itoa(m.status), color), m.url, m.urlLen)
	case wildcardRedirect:
		return fmt.Sprintf("%s %10d %s redirects to => %s\n",
			wld, m.length, m.url, m.location)
	case wildcardDynamic:
		return fmt.Sprintf("%s %10d Wildcard response is dynamic; %s (%s + url length) responses; toggle this behavior by using %s\n",
			wld, m.length, pkg.Highlight("auto-filtering", color), pkg.ModuleColorizer(strconv.FormatUint(m.length, 10), color), pkg.Highlight("--dont-filter", color))
	case wildcardStatic:
		return fmt.Sprintf("%s %10d Wildcard response is static; %s %s responses; toggle this behavior by using %s\n",
			wld, m.length, pkg.Highlight("auto-filtering", color), pkg.ModuleColorizer(strconv.FormatUint(m.length, 10), color), pkg.Highlight("--dont-filter", color))
	default:
		return ""
	}
}
