package ihttp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/chainreactors/proxyclient"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

var (
	DefaultMaxBodySize int64 = 1024 * 100 // 100k
)

const (
	Auto = iota
	FAST
	STANDARD
)

var ClientTypeMap = map[string]int{
	"auto":     Auto,
	"fast":     FAST,
	"standard": STANDARD,
	"http":     STANDARD,
}

func NewClient(config *ClientConfig) *Client {
	var client *Client

	if config.Type == Auto {
		config.Type = FAST
	}

	if config.Type == FAST {
		var maxBody int
		if DefaultMaxBodySize > 0 {
			maxBody = int(DefaultMaxBodySize)
		}
		client = &Client{
			fastClient: &fasthttp.Client{
				TLSConfig: &tls.Config{
					Renegotiation:      tls.RenegotiateOnceAsClient,
					InsecureSkipVerify: true,
				},
				Dial:                          customDialFunc(config.ProxyClient, config.Timeout),
				MaxConnsPerHost:               config.Thread * 3 / 2,
				MaxIdleConnDuration:           config.Timeout,
				ReadTimeout:                   config.Timeout,
				WriteTimeout:                  config.Timeout,
				ReadBufferSize:                16384, // 16k
				MaxResponseBodySize:           maxBody,
				NoDefaultUserAgentHeader:      true,
				DisablePathNormalizing:        true,
				DisableHeaderNamesNormalizing: true,
			},
			ClientConfig: config,
		}
	} else {
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{
				Renegotiation:      tls.RenegotiateNever,
				InsecureSkipVerify: true,
			},
			TLSHandshakeTimeout: config.Timeout,
			MaxConnsPerHost:     config.Thread * 3 / 2,
			IdleConnTimeout:     config.Timeout,
			ReadBufferSize:      16384, // 16k
		}
		if config.ProxyClient != nil {
			transport.DialContext = config.ProxyClient
		}
		client = &Client{
			standardClient: &http.Client{
				Transport: transport,
				Timeout:   config.Timeout,
				CheckRedirect: func(req *http.Request, via []*http.Request) error {
					// 探测需要看到原始的3xx与Location, 不跟随跳转
					return http.ErrUseLastResponse
				},
			},
			ClientConfig: config,
		}
	}

	if config.RateLimit > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	return client
}

type ClientConfig struct {
	Type        int
	Timeout     time.Duration
	Thread      int
	RateLimit   int
	ProxyClient proxyclient.Dial
}

// Client 同时封装fasthttp与net/http, 可以被多个goroutine并发使用
type Client struct {
	fastClient     *fasthttp.Client
	standardClient *http.Client
	limiter        *rate.Limiter
	*ClientConfig
}

// FastDo 超过MaxResponseBodySize的响应不视为错误, header已经完整读取, body只保留已读的部分
func (c *Client) FastDo(req *fasthttp.Request) (*fasthttp.Response, error) {
	resp := fasthttp.AcquireResponse()
	err := c.fastClient.DoTimeout(req, resp, c.Timeout)
	if err != nil && !errors.Is(err, fasthttp.ErrBodyTooLarge) {
		fasthttp.ReleaseResponse(resp)
		return nil, err
	}
	return resp, nil
}

func (c *Client) StandardDo(req *http.Request) (*http.Response, error) {
	return c.standardClient.Do(req)
}

func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if c.fastClient != nil {
		defer req.Release()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := c.FastDo(req.FastRequest)
		if err != nil {
			return nil, err
		}
		return &Response{FastResponse: resp, ClientType: FAST}, nil
	} else if c.standardClient != nil {
		resp, err := c.StandardDo(req.StandardRequest)
		if err != nil {
			return nil, err
		}
		return &Response{StandardResponse: resp, ClientType: STANDARD}, nil
	} else {
		return nil, fmt.Errorf("not found client")
	}
}

func customDialFunc(dialer proxyclient.Dial, timeout time.Duration) fasthttp.DialFunc {
	if dialer == nil {
		return func(addr string) (net.Conn, error) {
			return fasthttp.DialTimeout(addr, timeout)
		}
	}
	return func(addr string) (net.Conn, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return dialer.DialContext(ctx, "tcp", addr)
	}
}
