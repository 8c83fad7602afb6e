package pkg

import (
	"fmt"
	"net/url"
	"strings"
)

// FormatURL 将word拼接到base之后, 生成最终请求的url
//
// base总是被视作目录, 即"http://example.com/a"与"http://example.com/a/"等价.
// extension不为空时在word后追加".ext", 否则addSlash会给非空的word补上结尾的"/".
// queries不为空时覆盖最终url的query string.
func FormatURL(base, word string, addSlash bool, queries url.Values, extension string) (*url.URL, error) {
	if u, err := url.Parse(word); err == nil && u.IsAbs() {
		// 字典中的词本身就是url, 拼接后会直接跳转到其他站点
		return nil, fmt.Errorf("%w: %s", ErrWordIsURL, word)
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUrlError, err.Error())
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %s missing scheme or host", ErrUrlError, base)
	}

	if extension != "" {
		word = word + "." + strings.TrimPrefix(extension, ".")
	} else if addSlash && word != "" && !strings.HasSuffix(word, "/") {
		word += "/"
	}

	ref, err := url.Parse(word)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUrlError, err.Error())
	}
	u := baseURL.ResolveReference(ref)
	if len(queries) > 0 {
		u.RawQuery = queries.Encode()
	}
	return u, nil
}

// URLPathLength 返回url path中最后一个非空片段的长度
//
//	/			0
//	/a/bbb		3
//	/a/bbb/		3
func URLPathLength(u *url.URL) uint64 {
	if u == nil || !strings.HasPrefix(u.Path, "/") {
		return 0
	}
	segments := strings.Split(strings.TrimSuffix(u.Path[1:], "/"), "/")
	return uint64(len(segments[len(segments)-1]))
}

// ParseQueries 解析 key=value 格式的query参数
func ParseQueries(queries []string) (url.Values, error) {
	values := make(url.Values)
	for _, q := range queries {
		i := strings.Index(q, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid query %q, expected key=value", q)
		}
		values.Add(q[:i], q[i+1:])
	}
	return values, nil
}
