package core

import (
	"sync"

	"github.com/chainreactors/files"
	"github.com/chainreactors/heuristics/core/heuristics"
	"github.com/chainreactors/logs"
)

// FileHandler 消费dispatcher中的消息并写入文件, 是唯一负责落盘的部分
type FileHandler struct {
	file *files.File
	tx   *heuristics.Dispatcher
	wg   sync.WaitGroup
}

func NewFileHandler(filename string, tx *heuristics.Dispatcher) (*FileHandler, error) {
	file, err := files.NewFile(filename, false, false, true)
	if err != nil {
		return nil, err
	}
	return &FileHandler{file: file, tx: tx}, nil
}

func (h *FileHandler) Run() {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for msg := range h.tx.C() {
			h.file.SafeWrite(msg)
			h.file.SafeSync()
		}
		logs.Log.Debug("file handler exit")
	}()
}

// Wait 在所有生产者结束后调用, 等待队列中剩余的消息写入完毕
func (h *FileHandler) Wait() {
	h.tx.Stop()
	h.wg.Wait()
	h.file.Close()
}

func (h *FileHandler) Filename() string {
	return h.file.Filename
}
