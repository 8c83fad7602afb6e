package core

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chainreactors/files"
	"github.com/chainreactors/heuristics/core/filter"
	"github.com/chainreactors/heuristics/core/heuristics"
	"github.com/chainreactors/heuristics/core/ihttp"
	"github.com/chainreactors/heuristics/pkg"
	"github.com/chainreactors/logs"
	"github.com/chainreactors/proxyclient"
	"github.com/charmbracelet/lipgloss"
	"github.com/vbauerster/mpb/v8"
)

var (
	DefaultThreads = 20
)

// NewDefaultOption 返回带有默认值的配置, 用于不经过命令行解析的场景
func NewDefaultOption() *Option {
	opt := &Option{}

	opt.Method = http.MethodGet
	opt.MaxBodyLength = 100
	opt.Client = "auto"
	opt.Timeout = 5
	opt.Threads = DefaultThreads

	// sdk模式下默认静默
	opt.Quiet = true
	opt.NoBar = true
	opt.NoColor = true
	return opt
}

type Option struct {
	InputOptions   `group:"Input Options" config:"input" `
	OutputOptions  `group:"Output Options" config:"output"`
	RequestOptions `group:"Request Options" config:"request"`
	ModeOptions    `group:"Modify Options" config:"mode"`
	MiscOptions    `group:"Miscellaneous Options" config:"misc"`
}

type InputOptions struct {
	Config    string   `short:"c" long:"config" description:"File, config filename"`
	URL       []string `short:"u" long:"url" description:"Strings, input baseurl, e.g.: http://google.com"`
	URLFile   string   `short:"l" long:"list" description:"File, input filename"`
	PortRange string   `short:"p" long:"port" description:"String, input port range, e.g.: 80,8080-8090,db"`
	CIDRs     []string `short:"i" long:"cidr" description:"String, input cidr, e.g.: 1.1.1.1/24 "`
}

type OutputOptions struct {
	Filter       string `long:"filter" description:"String, custom filter function, e.g.: --filter 'current.Length > 1000'" config:"filter"`
	FilterStatus string `long:"filter-status" description:"Strings (comma split), hide wildcard responses with these status" config:"filter-status"`
	FilterSize   string `long:"filter-size" description:"Strings (comma split), hide wildcard responses with these size" config:"filter-size"`
	OutputFile   string `short:"f" long:"file" description:"String, output filename" json:"output_file,omitempty" config:"output-file"`
	Json         bool   `short:"j" long:"json" description:"Bool, output json" config:"json"`
	Quiet        bool   `short:"q" long:"quiet" description:"Bool, Quiet" config:"quiet"`
	NoColor      bool   `long:"no-color" description:"Bool, no color" config:"no-color"`
	NoBar        bool   `long:"no-bar" description:"Bool, No progress bar" config:"no-bar"`
}

type RequestOptions struct {
	Method        string   `short:"X" long:"method" default:"GET" description:"String, request method, e.g.: --method POST" config:"method"`
	Headers       []string `short:"H" long:"header" description:"Strings, custom headers, e.g.: --header 'Auth: example_auth'" config:"headers"`
	UserAgent     string   `long:"user-agent" description:"String, custom user-agent, e.g.: --user-agent Custom" config:"useragent"`
	Cookie        []string `long:"cookie" description:"Strings, custom cookie" config:"cookies"`
	Queries       []string `short:"Q" long:"query" description:"Strings, append query to every request, e.g.: -Q token=abc" config:"queries"`
	AddSlash      bool     `long:"add-slash" description:"Bool, append / to each request's path" config:"add-slash"`
	MaxBodyLength int64    `long:"max-length" default:"100" description:"Int, max response body length (kb), -1 or 0 read-all, default 100k, e.g. --max-length 1000" config:"max-length"`
}

type ModeOptions struct {
	RateLimit   int    `long:"rate-limit" default:"0" description:"Int, request rate limit (rate/s), e.g.: --rate-limit 100" config:"rate-limit"`
	StatusCodes string `short:"s" long:"status-codes" description:"Strings (comma split), status codes treated as hit, e.g.: -s 200,403 / -s +500 / -s !405" config:"status-codes"`
	DontFilter  bool   `long:"dont-filter" description:"Bool, skip wildcard detection" config:"dont-filter"`
}

type MiscOptions struct {
	Client     string   `short:"C" long:"client" default:"auto" choice:"fast" choice:"standard" choice:"auto" description:"String, Client type" config:"client"`
	Timeout    int      `short:"T" long:"timeout" default:"5" description:"Int, timeout with request (seconds)" config:"timeout"`
	Threads    int      `short:"t" long:"thread" default:"20" description:"Int, number of threads" config:"thread"`
	Debug      bool     `long:"debug" description:"Bool, output debug info" config:"debug"`
	Version    bool     `long:"version" description:"Bool, show version"`
	Verbose    []bool   `short:"v" description:"Bool, log verbose level ,default 0, level1: -v level2 -vv " config:"verbose"`
	Proxies    []string `long:"proxy" description:"String, proxy address, e.g.: --proxy socks5://127.0.0.1:1080" config:"proxies"`
	InitConfig bool     `long:"init" description:"Bool, init config file"`
}

func (opt *Option) Validate() error {
	if len(opt.URL) == 0 && opt.URLFile == "" && len(opt.CIDRs) == 0 && !files.HasStdin() {
		return fmt.Errorf("without any target, please use -u/-l/-i/-c or stdin to set targets")
	}

	if opt.Threads <= 0 {
		return errors.New("--thread must be greater than 0")
	}

	if _, ok := ihttp.ClientTypeMap[opt.Client]; !ok && opt.Client != "" {
		return fmt.Errorf("unknown client type %s", opt.Client)
	}
	return nil
}

// Prepare 校验参数并初始化全局变量
func (opt *Option) Prepare() error {
	if err := opt.Validate(); err != nil {
		return err
	}

	if opt.MaxBodyLength == -1 {
		ihttp.DefaultMaxBodySize = -1
	} else {
		ihttp.DefaultMaxBodySize = opt.MaxBodyLength * 1024
	}
	return nil
}

// BuildConfig 生成探测使用的只读配置
func (opt *Option) BuildConfig() (*heuristics.Config, error) {
	queries, err := pkg.ParseQueries(opt.Queries)
	if err != nil {
		return nil, err
	}

	statusCodes := pkg.ParseStatus(pkg.DefaultStatusCodes, opt.StatusCodes)
	if statusCodes == nil {
		// all
		for i := 100; i < 600; i++ {
			statusCodes = append(statusCodes, i)
		}
	}

	return &heuristics.Config{
		StatusCodes: statusCodes,
		Method:      strings.ToUpper(opt.Method),
		Headers:     opt.BuildHeaders(),
		AddSlash:    opt.AddSlash,
		Queries:     queries,
		Threads:     opt.Threads,
		Quiet:       opt.Quiet,
		DontFilter:  opt.DontFilter,
		SaveOutput:  opt.OutputFile != "",
		Color:       !(opt.NoColor || opt.Quiet),
	}, nil
}

func (opt *Option) BuildHeaders() http.Header {
	headers := make(http.Header)
	for _, h := range opt.Headers {
		i := strings.Index(h, ":")
		if i == -1 {
			logs.Log.Warnf("invalid header %s", h)
			continue
		}
		headers.Set(strings.TrimSpace(h[:i]), strings.TrimSpace(h[i+1:]))
	}

	if opt.UserAgent != "" {
		headers.Set("User-Agent", opt.UserAgent)
	}
	if opt.Cookie != nil {
		headers.Set("Cookie", strings.Join(opt.Cookie, "; "))
	}

	if headers.Get("User-Agent") == "" {
		headers.Set("User-Agent", pkg.DefaultUserAgent)
	}
	if headers.Get("Accept") == "" {
		headers.Set("Accept", "*/*")
	}
	return headers
}

func (opt *Option) BuildFilter() (*filter.Filter, error) {
	var status []int
	if opt.FilterStatus != "" {
		status = pkg.ParseStatus(nil, opt.FilterStatus)
	}
	return filter.NewFilter(status, pkg.ParseSizes(opt.FilterSize), opt.Filter)
}

func (opt *Option) BuildClient() (*ihttp.Client, error) {
	config := &ihttp.ClientConfig{
		Type:      ihttp.ClientTypeMap[opt.Client],
		Timeout:   time.Duration(opt.Timeout) * time.Second,
		Thread:    opt.Threads,
		RateLimit: opt.RateLimit,
	}

	if len(opt.Proxies) > 0 {
		urls, err := proxyclient.ParseProxyURLs(opt.Proxies)
		if err != nil {
			return nil, err
		}
		config.ProxyClient, err = proxyclient.NewClientChain(urls)
		if err != nil {
			return nil, err
		}
	}
	return ihttp.NewClient(config), nil
}

func (opt *Option) BuildTasks() (*TaskGenerator, error) {
	gen := NewTaskGenerator(opt.PortRange)

	var reader io.Reader
	if len(opt.URL) > 0 {
		if len(opt.URL) == 1 {
			gen.Name = opt.URL[0]
		} else {
			gen.Name = "cmd"
		}
		for _, u := range opt.URL {
			gen.Run(u)
		}
	} else if len(opt.CIDRs) != 0 {
		gen.Name = "cidr"
		gen.RunCIDR(opt.CIDRs)
	} else if opt.URLFile != "" {
		file, err := os.Open(opt.URLFile)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
		gen.Name = filepath.Base(opt.URLFile)
	} else if files.HasStdin() {
		reader = os.Stdin
		gen.Name = "stdin"
	}

	if reader != nil {
		content, err := io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		gen.RunLines(strings.Split(strings.TrimSpace(string(content)), "\n"))
	}
	return gen, nil
}

func (opt *Option) NewRunner() (*Runner, error) {
	var err error
	r := &Runner{
		Option: opt,
		Color:  true,
	}

	// log and bar
	if opt.NoColor {
		logs.Log.SetColor(false)
		r.Color = false
	}
	if opt.Quiet {
		logs.Log.SetQuiet(true)
		logs.Log.SetColor(false)
		r.Color = false
	}

	if !(opt.Quiet || opt.NoBar) {
		r.Progress = mpb.New(mpb.WithRefreshRate(100 * time.Millisecond))
		logs.Log.SetOutput(r.Progress)
	}

	r.Config, err = opt.BuildConfig()
	if err != nil {
		return nil, err
	}
	r.Config.Color = r.Color

	r.Client, err = opt.BuildClient()
	if err != nil {
		return nil, err
	}

	r.Filter, err = opt.BuildFilter()
	if err != nil {
		return nil, err
	}

	r.Tasks, err = opt.BuildTasks()
	if err != nil {
		return nil, err
	}
	if len(r.Tasks.Targets()) == 0 {
		return nil, errors.New("no valid target found")
	}

	r.Dispatcher = heuristics.NewDispatcher()
	if opt.OutputFile != "" {
		r.FileHandler, err = NewFileHandler(opt.OutputFile, r.Dispatcher)
		if err != nil {
			return nil, err
		}
	}

	if !opt.Quiet {
		fmt.Println(opt.PrintConfig(r))
	}
	return r, nil
}

func (opt *Option) PrintConfig(r *Runner) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Width(20) // Key 加粗并设定宽度
	stringValueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA07A"))              // 字符串样式
	arrayValueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))               // 数组样式
	numberValueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ADD8E6"))              // 数字样式
	panelWidth := 60
	padding := 2

	divider := strings.Repeat("─", panelWidth)

	formatValue := func(value interface{}) string {
		switch v := value.(type) {
		case string:
			return stringValueStyle.Render(v)
		case []string, []int:
			return arrayValueStyle.Render(fmt.Sprintf("%v", v))
		case int, int64, float64:
			return numberValueStyle.Render(fmt.Sprintf("%v", v))
		default:
			return stringValueStyle.Render(fmt.Sprintf("%v", v))
		}
	}

	line := func(icon, key string, value interface{}) string {
		return lipgloss.JoinHorizontal(lipgloss.Left, icon+" ", keyStyle.Render(key+": "), formatValue(value))
	}

	inputSource := line("🌐", "Targets", len(r.Tasks.Targets()))
	if r.Tasks.Name != "" {
		inputSource = lipgloss.JoinVertical(lipgloss.Left, line("📂", "Input", r.Tasks.Name), inputSource)
	}

	inputOptions := lipgloss.JoinVertical(lipgloss.Left,
		inputSource,
		line("🔢", "PortRange", opt.PortRange),
	)

	requestOptions := lipgloss.JoinVertical(lipgloss.Left,
		line("📨", "Method", r.Config.Method),
		line("🔗", "Queries", r.Config.Queries.Encode()),
		line("➗", "AddSlash", r.Config.AddSlash),
	)

	outputOptions := lipgloss.JoinVertical(lipgloss.Left,
		line("✅", "StatusCodes", r.Config.StatusCodes),
		line("⚙️", "Filter", opt.Filter),
		line("🛑", "FilterStatus", opt.FilterStatus),
		line("📏", "FilterSize", opt.FilterSize),
		line("💾", "OutputFile", opt.OutputFile),
		line("🔕", "DontFilter", opt.DontFilter),
	)

	miscOptions := lipgloss.JoinVertical(lipgloss.Left,
		line("⏱", "Timeout", opt.Timeout),
		line("🧵", "Threads", opt.Threads),
		line("🚦", "RateLimit", opt.RateLimit),
		line("🌍", "Proxies", opt.Proxies),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		inputOptions,
		requestOptions,
		outputOptions,
		miscOptions,
	)

	contentWithPadding := lipgloss.NewStyle().PaddingLeft(padding).Render(content)

	return lipgloss.Place(panelWidth+padding*2, 0, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			divider, // 顶部分割线
			contentWithPadding,
			divider, // 底部分割线
		),
	)
}
