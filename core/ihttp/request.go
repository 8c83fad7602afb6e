package ihttp

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
)

// BuildRequest 根据client类型构造请求, u需要是已经格式化好的完整url
func BuildRequest(ctx context.Context, clientType int, u, host, method string, headers http.Header) (*Request, error) {
	var req *Request
	if clientType == FAST {
		fastReq := fasthttp.AcquireRequest()
		fastReq.Header.SetMethod(method)
		fastReq.SetRequestURI(u)
		if host != "" {
			fastReq.SetHost(host)
		}
		req = &Request{FastRequest: fastReq, ClientType: FAST}
	} else {
		httpReq, err := http.NewRequestWithContext(ctx, method, u, nil)
		if err != nil {
			return nil, err
		}
		if host != "" {
			httpReq.Host = host
		}
		req = &Request{StandardRequest: httpReq, ClientType: STANDARD}
	}

	req.SetHeaders(headers)
	return req, nil
}

type Request struct {
	StandardRequest *http.Request
	FastRequest     *fasthttp.Request
	ClientType      int
}

func (r *Request) SetHeaders(header http.Header) {
	if r.StandardRequest != nil {
		for k, v := range header {
			for _, i := range v {
				r.StandardRequest.Header.Add(k, i)
			}
		}
	} else if r.FastRequest != nil {
		for k, v := range header {
			for _, i := range v {
				r.FastRequest.Header.Set(k, i)
			}
		}
	}
}

func (r *Request) URI() string {
	if r.FastRequest != nil {
		return r.FastRequest.URI().String()
	} else if r.StandardRequest != nil {
		return r.StandardRequest.URL.String()
	} else {
		return ""
	}
}

func (r *Request) Host() string {
	if r.FastRequest != nil {
		return string(r.FastRequest.Host())
	} else if r.StandardRequest != nil {
		return r.StandardRequest.Host
	} else {
		return ""
	}
}

// Release 归还fasthttp的request对象, 之后不能再使用FastRequest
func (r *Request) Release() {
	if r.FastRequest != nil {
		fasthttp.ReleaseRequest(r.FastRequest)
		r.FastRequest = nil
	}
}
