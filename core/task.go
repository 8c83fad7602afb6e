package core

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/chainreactors/logs"
	"github.com/chainreactors/utils"
)

func NewTaskGenerator(port string) *TaskGenerator {
	return &TaskGenerator{
		ports: utils.ParsePortsString(port),
		seen:  make(map[string]bool),
	}
}

// TaskGenerator 将用户输入的url, ip, host展开为完整的target列表, 并去重
type TaskGenerator struct {
	Name    string
	ports   []string
	seen    map[string]bool
	targets []string
}

func (gen *TaskGenerator) Run(baseurl string) {
	baseurl = strings.TrimSpace(baseurl)
	if baseurl == "" {
		return
	}

	explicit := strings.Contains(baseurl, "://")
	if !explicit {
		baseurl = "http://" + baseurl
	}
	parsed, err := url.Parse(baseurl)
	if err != nil || parsed.Host == "" {
		logs.Log.Warnf("parse %s, invalid target", baseurl)
		return
	}
	if !explicit && parsed.Port() == "443" {
		parsed.Scheme = "https"
	}

	if len(gen.ports) == 0 {
		gen.add(parsed.String())
		return
	}

	for _, p := range gen.ports {
		scheme := parsed.Scheme
		if !explicit && p == "443" {
			scheme = "https"
		}
		gen.add(fmt.Sprintf("%s://%s%s", scheme, joinHostPort(parsed.Hostname(), p), parsed.EscapedPath()))
	}
}

// RunCIDR 将cidr展开为ip后逐个生成target, 没有指定端口时默认使用80与443
func (gen *TaskGenerator) RunCIDR(cidrs []string) {
	if len(gen.ports) == 0 {
		gen.ports = []string{"80", "443"}
	}
	for _, cidr := range utils.ParseCIDRs(cidrs) {
		if cidr == nil {
			continue
		}
		for ip := range cidr.Range() {
			gen.Run(ip.String())
		}
	}
}

// RunLines 每行可以是url, ip或者cidr
func (gen *TaskGenerator) RunLines(lines []string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "/") && !strings.Contains(line, "://") {
			if cidr := utils.ParseCIDR(line); cidr != nil {
				for ip := range cidr.Range() {
					gen.Run(ip.String())
				}
				continue
			}
		}
		gen.Run(line)
	}
}

func (gen *TaskGenerator) Targets() []string {
	return gen.targets
}

func (gen *TaskGenerator) add(target string) {
	if gen.seen[target] {
		logs.Log.Debugf("duplicate target %s, skipped", target)
		return
	}
	gen.seen[target] = true
	gen.targets = append(gen.targets, target)
}

func joinHostPort(host, port string) string {
	if strings.Contains(host, ":") {
		return "[" + host + "]:" + port
	}
	return host + ":" + port
}
