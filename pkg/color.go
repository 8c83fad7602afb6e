package pkg

import (
	"strings"

	"github.com/chainreactors/logs"
)

// StatusColorizer 根据状态码或者标签为字符串着色, color为false时原样返回
func StatusColorizer(status string, color bool) string {
	if !color {
		return status
	}
	switch {
	case status == "WLD":
		return logs.Cyan(status)
	case status == "ERROR":
		return logs.RedBold(status)
	case strings.HasPrefix(status, "1"):
		return logs.PurpleBold(status)
	case strings.HasPrefix(status, "2"):
		return logs.GreenBold(status)
	case strings.HasPrefix(status, "3"):
		return logs.YellowBold(status)
	case strings.HasPrefix(status, "4"), strings.HasPrefix(status, "5"):
		return logs.RedBold(status)
	default:
		return status
	}
}

func ModuleColorizer(module string, color bool) string {
	if !color {
		return module
	}
	return logs.CyanLine(module)
}

func Highlight(s string, color bool) string {
	if !color {
		return s
	}
	return logs.YellowBold(s)
}
