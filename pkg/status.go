package pkg

import (
	"strconv"
	"strings"

	"github.com/chainreactors/logs"
)

// ParseStatus 在preset的基础上解析用户输入的状态码
//
//	"200,302"	覆盖preset
//	"+500"		在preset上追加
//	"!404"		从preset中移除
//	"all"		返回nil, 调用方自行处理
func ParseStatus(preset []int, changed string) []int {
	changed = strings.TrimSpace(changed)
	if changed == "" {
		return preset
	}
	if changed == "all" {
		return nil
	}

	parsed := make([]int, len(preset))
	copy(parsed, preset)
	if strings.HasPrefix(changed, "+") {
		for _, s := range strings.Split(changed[1:], ",") {
			if t, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				logs.Log.Warnf("invalid status code %s, skipped", s)
			} else if !IntsContains(parsed, t) {
				parsed = append(parsed, t)
			}
		}
	} else if strings.HasPrefix(changed, "!") {
		for _, s := range strings.Split(changed[1:], ",") {
			t, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				logs.Log.Warnf("invalid status code %s, skipped", s)
				continue
			}
			for i, status := range parsed {
				if t == status {
					parsed = append(parsed[:i], parsed[i+1:]...)
					break
				}
			}
		}
	} else {
		parsed = []int{}
		for _, s := range strings.Split(changed, ",") {
			if t, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				logs.Log.Warnf("invalid status code %s, skipped", s)
			} else {
				parsed = append(parsed, t)
			}
		}
	}
	return parsed
}

func ParseSizes(changed string) []uint64 {
	var sizes []uint64
	for _, s := range strings.Split(changed, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if t, err := strconv.ParseUint(s, 10, 64); err != nil {
			logs.Log.Warnf("invalid size %s, skipped", s)
		} else {
			sizes = append(sizes, t)
		}
	}
	return sizes
}

func IntsContains(s []int, e int) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}

func IsRedirection(status int) bool {
	return status >= 300 && status < 400
}
