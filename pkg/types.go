package pkg

import (
	"github.com/chainreactors/logs"
)

const LogVerbose = logs.Warn - 2

var (
	// 默认视为命中的状态码
	DefaultStatusCodes = []int{200, 204, 301, 302, 307, 308, 401, 403, 405}
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var ContentTypeMap = map[string]string{
	"application/javascript":   "js",
	"application/json":         "json",
	"application/xml":          "xml",
	"application/octet-stream": "bin",
	"image/x-icon":             "ico",
	"image/png":                "png",
	"image/jpeg":               "jpg",
	"text/html":                "html",
	"text/xml":                 "xml",
	"text/plain":               "txt",
	"text/css":                 "css",
}
