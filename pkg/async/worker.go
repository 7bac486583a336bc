package async

import (
	"sync"

	"noticeboard/pkg/logger"
)

// Worker 异步任务处理器，用于执行不需要等待结果的后台任务
type Worker struct {
	taskQueue chan func()
	logger    *logger.Logger
	wg        sync.WaitGroup
}

// NewWorker 创建一个新的工作器
func NewWorker(queueSize int, logger *logger.Logger) *Worker {
	return &Worker{
		taskQueue: make(chan func(), queueSize),
		logger:    logger,
	}
}

// Start 启动指定数量的工作协程
func (w *Worker) Start(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.processTask()
	}
}

// Stop 停止工作器，等待队列中剩余任务执行完毕
func (w *Worker) Stop() {
	close(w.taskQueue)
	w.wg.Wait()
}

// AddTask 将任务加入队列，队列满时丢弃并记录警告
func (w *Worker) AddTask(task func()) {
	select {
	case w.taskQueue <- task:
	default:
		w.logger.Warn("异步任务队列已满，任务被丢弃")
	}
}

// processTask 处理任务的工作循环
func (w *Worker) processTask() {
	defer w.wg.Done()

	for task := range w.taskQueue {
		w.executeTask(task)
	}
}

// executeTask 执行单个任务，捕获panic避免拖垮工作协程
func (w *Worker) executeTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("异步任务发生panic", "recover", r)
		}
	}()
	task()
}
