package baseline

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/chainreactors/heuristics/core/ihttp"
	"github.com/chainreactors/heuristics/pkg"
	"github.com/chainreactors/parsers"
	"github.com/chainreactors/utils/iutils"
)

// NewBaseline 从一次请求的响应中收集探测需要的信息, 调用方负责之后Close响应
func NewBaseline(u, host string, resp *ihttp.Response) *Baseline {
	bl := &Baseline{
		SprayResult: &parsers.SprayResult{
			UrlString: u,
			Status:    resp.StatusCode(),
			IsValid:   true,
		},
	}

	if t, ok := pkg.ContentTypeMap[resp.ContentType()]; ok {
		bl.ContentType = t
	} else {
		bl.ContentType = "other"
	}

	bl.HeaderLength = len(resp.Header())
	if body := resp.Body(); body != nil {
		bl.Body = make([]byte, len(body))
		copy(bl.Body, body)
	}
	bl.Length = uint64(resp.ContentLength())
	bl.BodyLength = int(bl.Length)

	if pkg.IsRedirection(bl.Status) {
		bl.RedirectURL = resp.GetHeader("Location")
	}

	if bl.ContentType == "html" && len(bl.Body) > 0 {
		bl.Title = iutils.AsciiEncode(parsers.MatchTitle(bl.Body))
	}

	uu, err := url.Parse(u)
	if err == nil {
		bl.Path = uu.Path
		bl.Url = uu
		if uu.Host != host {
			bl.Host = host
		}
	} else {
		bl.IsValid = false
		bl.Reason = pkg.ErrUrlError.Error()
		bl.ErrString = err.Error()
	}
	return bl
}

type Baseline struct {
	*parsers.SprayResult
	Url    *url.URL `json:"-"`
	Body   []byte   `json:"-"`
	Length uint64   `json:"-"` // 物化后的content length, 用于wildcard的长度比较
}

func (bl *Baseline) IsRedirection() bool {
	return pkg.IsRedirection(bl.Status)
}

// PathLength 最后一个path片段的长度, 与wildcard filter中dynamic的计算方式一致
func (bl *Baseline) PathLength() uint64 {
	return pkg.URLPathLength(bl.Url)
}

func (bl *Baseline) String() string {
	var line strings.Builder
	line.WriteString(bl.UrlString)
	if bl.Host != "" {
		line.WriteString(" (" + bl.Host + ")")
	}
	if bl.Reason != "" {
		line.WriteString(" [reason: ")
		line.WriteString(bl.Reason)
		line.WriteString("]")
	}
	if bl.ErrString != "" {
		line.WriteString(" [err: ")
		line.WriteString(bl.ErrString)
		line.WriteString("]")
		return line.String()
	}

	line.WriteString(" - ")
	line.WriteString(strconv.Itoa(bl.Status))
	line.WriteString(" - ")
	line.WriteString(strconv.FormatUint(bl.Length, 10))
	if bl.Title != "" {
		line.WriteString(" [" + bl.Title + "]")
	}
	if bl.RedirectURL != "" {
		line.WriteString(" --> ")
		line.WriteString(bl.RedirectURL)
	}
	return line.String()
}
