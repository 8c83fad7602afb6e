package main

import (
	"os"

	"github.com/chainreactors/heuristics/cmd"
	"github.com/gookit/config/v2"
	"github.com/gookit/config/v2/yaml"
)

func init() {
	config.WithOptions(func(opt *config.Options) {
		opt.DecoderConfig.TagName = "config"
		opt.ParseDefault = true
	})
	config.AddDriver(yaml.Driver)
}

func main() {
	os.Exit(cmd.Heuristics())
}
