package pool

import (
	"sync"
	"time"
)

type Config struct {
	Thread   int
	Timeout  time.Duration // 单个target分类的超时时间, 0为不限制
	OutputCh chan *Result
	Outwg    *sync.WaitGroup
}
