package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Pool fans scan tasks out to a fixed set of workers. All workers share one
// Scanner, which is safe because scanning has no mutable state.
type Pool struct {
	ctx            context.Context
	cancel         context.CancelFunc
	scanner        *Scanner
	tasks          chan Task
	results        chan TaskResult
	progress       chan Progress
	wg             sync.WaitGroup
	numWorkers     int
	totalTasks     int
	completedTasks int
	mu             sync.RWMutex
}

// Task names one input to scan.
type Task struct {
	ID   string
	Path string
}

// TaskResult pairs a task with its outcome.
type TaskResult struct {
	Err    error
	Result *Result
	Task   Task
}

// Progress reports the state of one task as it moves through the pool.
type Progress struct {
	TaskID    string
	Path      string
	Status    TaskStatus
	Message   string
	Completed int
	Total     int
	Elapsed   time.Duration
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// NewPool creates a pool of numWorkers workers around the given Scanner.
func NewPool(scanner *Scanner, numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = 4
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		ctx:        ctx,
		cancel:     cancel,
		scanner:    scanner,
		numWorkers: numWorkers,
		tasks:      make(chan Task, numWorkers*2),
		results:    make(chan TaskResult, numWorkers*2),
		progress:   make(chan Progress, 100),
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}

			p.processTask(workerID, task)
		}
	}
}

func (p *Pool) processTask(workerID int, task Task) {
	start := time.Now()

	p.sendProgress(Progress{
		TaskID:  task.ID,
		Path:    task.Path,
		Status:  TaskStatusProcessing,
		Message: fmt.Sprintf("Worker %d started processing", workerID),
	})

	result, err := p.scanner.ScanFile(task.Path)
	elapsed := time.Since(start)

	p.mu.Lock()
	p.completedTasks++
	completed := p.completedTasks
	total := p.totalTasks
	p.mu.Unlock()

	status := TaskStatusCompleted
	message := fmt.Sprintf("Worker %d completed in %v", workerID, elapsed)

	if err != nil {
		status = TaskStatusFailed
		message = fmt.Sprintf("Worker %d failed: %v", workerID, err)
	}

	p.sendProgress(Progress{
		TaskID:    task.ID,
		Path:      task.Path,
		Status:    status,
		Message:   message,
		Completed: completed,
		Total:     total,
		Elapsed:   elapsed,
	})

	p.results <- TaskResult{Task: task, Result: result, Err: err}
}

// sendProgress drops the update rather than block when nobody is draining
// the progress channel.
func (p *Pool) sendProgress(update Progress) {
	select {
	case p.progress <- update:
	default:
	}
}

// Submit queues a task for processing.
func (p *Pool) Submit(task Task) {
	p.mu.Lock()
	p.totalTasks++
	p.mu.Unlock()

	p.sendProgress(Progress{
		TaskID:  task.ID,
		Path:    task.Path,
		Status:  TaskStatusPending,
		Message: "Task queued for processing",
	})

	select {
	case p.tasks <- task:
	case <-p.ctx.Done():
	}
}

// SubmitBatch queues several tasks at once.
func (p *Pool) SubmitBatch(tasks []Task) {
	for _, task := range tasks {
		p.Submit(task)
	}
}

// Results returns the channel of completed task results.
func (p *Pool) Results() <-chan TaskResult {
	return p.results
}

// Progress returns the channel of progress updates.
func (p *Pool) Progress() <-chan Progress {
	return p.progress
}

// Wait signals that no more tasks will be submitted, waits for the workers
// to drain the queue, and closes the outbound channels.
func (p *Pool) Wait() {
	close(p.tasks)
	p.wg.Wait()
	close(p.results)
	close(p.progress)
}

// Shutdown cancels in-flight work and releases the pool.
func (p *Pool) Shutdown() {
	p.cancel()
	p.Wait()
}
