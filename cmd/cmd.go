package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainreactors/files"
	"github.com/chainreactors/heuristics/core"
	"github.com/chainreactors/heuristics/pkg"
	"github.com/chainreactors/logs"
	"github.com/jessevdk/go-flags"
)

var ver = "v0.1.0"
var DefaultConfig = "config.yaml"

func init() {
	logs.Log.SetColorMap(map[logs.Level]func(string) string{
		logs.Info:      logs.PurpleBold,
		logs.Important: logs.GreenBold,
		pkg.LogVerbose: logs.Green,
	})
}

// ExitCode 无法连接任何target以及其他致命错误时返回1
func ExitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	return 1
}

func Heuristics() int {
	var option core.Option

	if files.IsExist(DefaultConfig) {
		logs.Log.Debug("config.yaml exist, loading")
		err := pkg.LoadConfig(DefaultConfig, &option)
		if err != nil {
			logs.Log.Error(err.Error())
			return 1
		}
	}

	parser := flags.NewParser(&option, flags.Default)
	parser.Usage = `

  QUICKSTART:
    simple example:
      heuristics -u http://example.com

    multi targets with ports:
      heuristics -l url.txt -p 80,443,8080

    cidr input, save wildcard messages:
      heuristics -i 10.0.0.0/24 -f wildcard.txt

    only treat 200 as hit, with a query on every request:
      heuristics -u http://example.com -s 200 -Q token=abc --add-slash
`

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		fmt.Println(err.Error())
		return 1
	}

	// logs
	logs.AddLevel(pkg.LogVerbose, "verbose", "[=] %s {{suffix}}")
	if option.Debug {
		logs.Log.SetLevel(logs.Debug)
	} else if len(option.Verbose) > 0 {
		logs.Log.SetLevel(pkg.LogVerbose)
	}

	if option.InitConfig {
		configStr, err := pkg.InitDefaultConfig(&option)
		if err != nil {
			logs.Log.Error(err.Error())
			return 1
		}
		if files.IsExist(DefaultConfig) {
			logs.Log.Warn("override default config: ./config.yaml")
		}
		err = os.WriteFile(DefaultConfig, []byte(configStr), 0o744)
		if err != nil {
			logs.Log.Warn("cannot create config: config.yaml, " + err.Error())
			return 1
		}
		logs.Log.Info("init default config: ./config.yaml")
		return 0
	}

	if option.Config != "" {
		err := pkg.LoadConfig(option.Config, &option)
		if err != nil {
			logs.Log.Error(err.Error())
			return 1
		}
		if files.IsExist(DefaultConfig) {
			logs.Log.Warnf("custom config %s, override default config", option.Config)
		} else {
			logs.Log.Important("load config: " + option.Config)
		}
	}

	if option.Version {
		fmt.Println(ver)
		return 0
	}

	if err := option.Prepare(); err != nil {
		logs.Log.Error(err.Error())
		return 1
	}

	runner, err := option.NewRunner()
	if err != nil {
		logs.Log.Error(err.Error())
		return 1
	}

	ctx, canceler := context.WithCancel(context.Background())
	defer canceler()
	go func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logs.Log.Important("exit signal, stop and exit")
		canceler()
	}()

	_, err = runner.Run(ctx)
	if err != nil && !errors.Is(err, pkg.ErrNoReachableTarget) {
		// ErrNoReachableTarget 已经在探测时输出
		logs.Log.Error(err.Error())
	}
	return ExitCode(err)
}
