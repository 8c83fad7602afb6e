package heuristics

import (
	"errors"
	"sync"

	"github.com/chainreactors/logs"
)

var ErrDispatcherClosed = errors.New("dispatcher receiver closed")

// Dispatcher 多生产者单消费者的无界消息队列, 用于把提示信息转交给文件输出
//
// 发送端永远不会阻塞, 也不会因为接收端关闭而panic.
type Dispatcher struct {
	out  chan string
	done chan struct{}

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []string
	stopped bool
	closed  bool
	once    sync.Once
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		out:  make(chan string),
		done: make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.forward()
	return d
}

func (d *Dispatcher) forward() {
	defer close(d.out)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.stopped && !d.closed {
			d.cond.Wait()
		}
		if d.closed || len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		msg := d.queue[0]
		d.queue[0] = ""
		d.queue = d.queue[1:]
		d.mu.Unlock()

		select {
		case d.out <- msg:
		case <-d.done:
			return
		}
	}
}

// C 接收端, Stop或Close之后会被关闭
func (d *Dispatcher) C() <-chan string {
	return d.out
}

// Send 将消息放入队列, 接收端已经关闭时返回ErrDispatcherClosed
func (d *Dispatcher) Send(msg string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.stopped {
		return ErrDispatcherClosed
	}
	d.queue = append(d.queue, msg)
	d.cond.Signal()
	return nil
}

// TrySend save为false时什么都不做, 发送失败只记录debug日志
func (d *Dispatcher) TrySend(msg string, save bool) {
	if !save || d == nil {
		return
	}
	if err := d.Send(msg); err != nil {
		logs.Log.Debugf("heuristics::try_send %s, drop message: %q", err.Error(), msg)
		return
	}
	logs.Log.Debug("heuristics::try_send sent message to file handler")
}

// Stop 生产者全部结束, 队列中剩余的消息发送完毕后关闭C
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cond.Broadcast()
	d.mu.Unlock()
}

// Close 接收端退出, 丢弃队列中的消息, 之后的发送都会失败
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.queue = nil
		d.cond.Broadcast()
		d.mu.Unlock()
		close(d.done)
	})
}
