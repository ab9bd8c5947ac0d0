package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotRunning is returned when a task is submitted to a stopped pool.
var ErrNotRunning = errors.New("worker pool not running")

// Task is one unit of background work. Attempt starts at zero.
type Task struct {
	ID       string
	Kind     string
	Attempt  int
	Enqueued time.Time
}

// Handler processes a task; a returned error schedules a retry.
type Handler func(ctx context.Context, task Task) error

// Options configures a Pool.
type Options struct {
	Workers    int
	Buffer     int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Pool runs tasks on a fixed number of goroutines with bounded retries.
type Pool struct {
	name    string
	handler Handler
	opts    Options
	tasks   chan Task

	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

// NewPool builds a pool; call Start before submitting.
func NewPool(name string, handler Handler, opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Buffer <= 0 {
		opts.Buffer = opts.Workers * 8
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pool{
		name:    name,
		handler: handler,
		opts:    opts,
		tasks:   make(chan Task, opts.Buffer),
	}
}

// Start launches the workers. Subsequent calls are no-ops.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.running = true
	for i := 0; i < p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	p.opts.Logger.Info("worker pool started", zap.String("pool", p.name), zap.Int("workers", p.opts.Workers))
}

// Stop cancels in-flight work and waits for the workers to return.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.cancel()
	p.mu.Unlock()

	p.wg.Wait()
	p.opts.Logger.Info("worker pool stopped", zap.String("pool", p.name))
}

// Submit queues a task, blocking while the buffer is full.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	running, ctx := p.running, p.ctx
	p.mu.RUnlock()
	if !running {
		return fmt.Errorf("%s: %w", p.name, ErrNotRunning)
	}
	if task.Enqueued.IsZero() {
		task.Enqueued = time.Now().UTC()
	}

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", p.name, ErrNotRunning)
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			if err := p.handler(p.ctx, task); err != nil {
				p.retry(task, err)
			}
		}
	}
}

func (p *Pool) retry(task Task, cause error) {
	log := p.opts.Logger.With(zap.String("pool", p.name), zap.String("task_id", task.ID), zap.String("kind", task.Kind))
	if task.Attempt >= p.opts.MaxRetries {
		log.Error("task failed permanently", zap.Int("attempt", task.Attempt), zap.Error(cause))
		return
	}
	task.Attempt++
	log.Warn("task failed, retrying", zap.Int("attempt", task.Attempt), zap.Error(cause))

	time.AfterFunc(p.opts.RetryDelay*time.Duration(task.Attempt), func() {
		if err := p.Submit(task); err != nil {
			log.Warn("task requeue dropped", zap.Error(err))
		}
	})
}
