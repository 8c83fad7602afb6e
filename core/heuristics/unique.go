package heuristics

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDLength 每个uuid去掉"-"之后的长度
const UUIDLength = 32

// UniqueString 返回length个uuid拼接成的小写十六进制字符串, 长度为 length * 32
func UniqueString(length int) string {
	if length <= 0 {
		return ""
	}
	var s strings.Builder
	s.Grow(length * UUIDLength)
	for i := 0; i < length; i++ {
		s.WriteString(strings.ReplaceAll(uuid.New().String(), "-", ""))
	}
	return s.String()
}
