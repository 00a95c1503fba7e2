// Package scheduler runs renderer frames on a fixed set of worker threads.
package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/tilerast/internal/engine/renderer"
	"github.com/Faultbox/tilerast/internal/logger"
)

// Runner executes one task on one thread. *renderer.Renderer implements it.
type Runner interface {
	DoTask(task renderer.Task, thread, threads int)
}

// Pool dispatches every task of a group to all of its threads and waits
// for the group to finish before starting the next one.
type Pool struct {
	threads int
	frames  atomic.Uint64
	log     *zap.Logger
}

// New creates a pool with the given number of threads. Zero or less means
// one per CPU.
func New(threads int) *Pool {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	p := &Pool{threads: threads, log: logger.Named("scheduler")}
	p.log.Info("scheduler created", zap.Int("threads", threads))
	return p
}

// Threads returns the thread count passed to every task.
func (p *Pool) Threads() int {
	return p.threads
}

// Frames returns the number of frames completed.
func (p *Pool) Frames() uint64 {
	return p.frames.Load()
}

// RunGroup runs every task of group on every thread concurrently. A task
// that is not needed on a thread returns at once.
func (p *Pool) RunGroup(ctx context.Context, r Runner, group []renderer.Task) error {
	if len(group) == 0 {
		return nil
	}
	g, _ := errgroup.WithContext(ctx)
	for _, task := range group {
		for thread := 0; thread < p.threads; thread++ {
			g.Go(func() error {
				r.DoTask(task, thread, p.threads)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("running %v: %w", group, err)
	}
	return nil
}

// RunFrame runs renderer.Schedule. A frame that has started always runs to
// completion; ctx is only checked before it begins.
func (p *Pool) RunFrame(ctx context.Context, r Runner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, group := range renderer.Schedule {
		if err := p.RunGroup(context.WithoutCancel(ctx), r, group); err != nil {
			return err
		}
	}
	p.frames.Add(1)
	return nil
}
