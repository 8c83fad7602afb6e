package ihttp

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/chainreactors/logs"
	"github.com/chainreactors/utils/httputils"
	"github.com/valyala/fasthttp"
)

type Response struct {
	StandardResponse *http.Response
	FastResponse     *fasthttp.Response
	ClientType       int

	body   []byte
	length int64
	read   bool
}

func (r *Response) StatusCode() int {
	if r.FastResponse != nil {
		return r.FastResponse.StatusCode()
	} else if r.StandardResponse != nil {
		return r.StandardResponse.StatusCode
	} else {
		return 0
	}
}

// readStandard 读取net/http的body, 只保留DefaultMaxBodySize以内的部分, 其余部分仅计数后丢弃.
// DefaultMaxBodySize <= 0 时不限制, 与fasthttp的MaxResponseBodySize保持一致
func (r *Response) readStandard() {
	if r.read || r.StandardResponse == nil || r.StandardResponse.Body == nil {
		return
	}
	r.read = true

	var buf bytes.Buffer
	var reader io.Reader = r.StandardResponse.Body
	if DefaultMaxBodySize > 0 {
		reader = io.LimitReader(r.StandardResponse.Body, DefaultMaxBodySize)
	}
	n, err := io.Copy(&buf, reader)
	if err != nil {
		logs.Log.Debugf("read body failed, %s", err.Error())
	}
	rest, err := io.Copy(io.Discard, r.StandardResponse.Body)
	if err != nil {
		logs.Log.Debugf("drain body failed, %s", err.Error())
	}
	_ = r.StandardResponse.Body.Close()
	r.body = buf.Bytes()
	r.length = n + rest
}

func (r *Response) Body() []byte {
	if r.FastResponse != nil {
		return r.FastResponse.Body()
	} else if r.StandardResponse != nil {
		r.readStandard()
		return r.body
	} else {
		return nil
	}
}

// ContentLength 返回响应体长度. 优先使用Content-Length头,
// chunked等没有长度头的情况下返回实际读取到的字节数.
func (r *Response) ContentLength() int64 {
	if r.FastResponse != nil {
		if l := r.FastResponse.Header.ContentLength(); l >= 0 {
			return int64(l)
		}
		return int64(len(r.FastResponse.Body()))
	} else if r.StandardResponse != nil {
		if r.StandardResponse.ContentLength >= 0 {
			return r.StandardResponse.ContentLength
		}
		r.readStandard()
		return r.length
	} else {
		return 0
	}
}

func (r *Response) ContentType() string {
	var t string
	if r.FastResponse != nil {
		t = string(r.FastResponse.Header.ContentType())
	} else if r.StandardResponse != nil {
		t = r.StandardResponse.Header.Get("Content-Type")
	} else {
		return ""
	}

	if i := strings.Index(t, ";"); i > 0 {
		return t[:i]
	} else {
		return t
	}
}

func (r *Response) Header() []byte {
	if r.FastResponse != nil {
		return r.FastResponse.Header.Header()
	} else if r.StandardResponse != nil {
		return append(httputils.ReadRawHeader(r.StandardResponse), []byte("\r\n")...)
	} else {
		return nil
	}
}

func (r *Response) GetHeader(key string) string {
	if r.FastResponse != nil {
		return string(r.FastResponse.Header.Peek(key))
	} else if r.StandardResponse != nil {
		return r.StandardResponse.Header.Get(key)
	} else {
		return ""
	}
}

// Close 释放连接资源, 无论是否读取过body都需要调用
func (r *Response) Close() {
	if r.FastResponse != nil {
		fasthttp.ReleaseResponse(r.FastResponse)
		r.FastResponse = nil
	} else if r.StandardResponse != nil {
		r.readStandard()
	}
}
