package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/engine/binner"
	"github.com/Faultbox/tilerast/internal/engine/shader"
)

// Task identifies one step of a frame.
type Task uint32

// Task ids. The numbering is part of the scheduler contract.
const (
	RenderEverything Task = iota
	TickTextureSets
	ResetCounters
	ClearFramebuf
	ClearDepthAndNormal
	FlipPhase
)

var taskNames = [...]string{
	RenderEverything:    "render_everything",
	TickTextureSets:     "tick_texture_sets",
	ResetCounters:       "reset_counters",
	ClearFramebuf:       "clear_framebuf",
	ClearDepthAndNormal: "clear_depth_and_normal",
	FlipPhase:           "flip_phase",
}

func (t Task) String() string {
	if int(t) < len(taskNames) {
		return taskNames[t]
	}
	return fmt.Sprintf("task(%d)", uint32(t))
}

// Schedule is the canonical frame. Groups run in order; every task of a
// group runs on all threads and the group ends when all of them return.
var Schedule = [][]Task{
	{ResetCounters, ClearFramebuf, ClearDepthAndNormal},
	{RenderEverything},
	{FlipPhase, TickTextureSets},
}

const (
	instanceBatch = 8
	pixelBatch    = 2048
)

// DoTask runs task on worker thread of threads. Every thread of a frame
// must call it with the same thread count. Unknown tasks and invalid
// thread arguments are programmer errors and panic.
func (r *Renderer) DoTask(task Task, thread, threads int) {
	if threads <= 0 {
		panic(fmt.Sprintf("renderer: invalid thread count %d", threads))
	}
	if thread < 0 || thread >= threads {
		panic(fmt.Sprintf("renderer: thread %d out of range [0, %d)", thread, threads))
	}

	switch task {
	case RenderEverything:
		r.renderEverything(threads)
	case TickTextureSets:
		if thread == 0 {
			r.scene.Textures.TickSets()
		}
	case ResetCounters:
		if thread == 0 {
			r.resetCounters(threads)
		}
	case ClearFramebuf:
		if thread == 0 {
			r.clearFramebuf()
		}
	case ClearDepthAndNormal:
		if thread == 0 {
			r.clearDepthAndNormal()
		}
	case FlipPhase:
		if thread == 0 {
			r.flipPhase()
		}
	default:
		panic(fmt.Sprintf("renderer: unknown %v", task))
	}
}

// RunFrame runs Schedule on the calling goroutine with a single thread.
func (r *Renderer) RunFrame() {
	for _, group := range Schedule {
		for _, task := range group {
			r.DoTask(task, 0, 1)
		}
	}
}

func (r *Renderer) resetCounters(threads int) {
	r.viewport = r.scene.Camera.Viewport(r.config.Width, r.config.Height, r.config.Near)
	r.handles = r.scene.Instances.Snapshot(r.handles[:0])
	r.lockScene()

	r.instances.Reset(len(r.handles))
	r.bins.ResetCounter()
	r.pixels.Reset(r.config.Width * r.config.Height)
	for _, b := range r.barriers {
		b.StartAction(threads)
	}

	r.statsMu.Lock()
	r.frame = Stats{}
	r.statsMu.Unlock()
}

func (r *Renderer) clearFramebuf() {
	r.target.Clear(r.config.ClearColor)
	copy(r.output.Front(), r.target.Color)
}

func (r *Renderer) clearDepthAndNormal() {
	r.target.ClearDepth()
	r.bins.ResetDepth()

	o := r.bins.DropAll()
	r.overflow = o
	if o.Pool > 0 || o.Bins > 0 {
		r.log.Warn("binner overflowed, capacity grown",
			zap.Int("pool_overflow", o.Pool),
			zap.Int("bin_overflow", o.Bins),
			zap.Int("pool_capacity", r.bins.Pool().Cap()),
		)
	}
}

func (r *Renderer) flipPhase() {
	r.output.Flip()
	r.unlockScene()

	r.statsMu.Lock()
	r.frame.Overflow = r.overflow
	r.last = r.frame
	r.statsMu.Unlock()

	r.log.Debug("frame done", zap.Int("phase", r.output.Phase()), statsField(r.last))
}

// renderEverything is the three-phase body every worker runs.
func (r *Renderer) renderEverything(threads int) {
	sc := r.scratch.Get().(*Scratch)
	defer r.scratch.Put(sc)

	r.instances.Each(instanceBatch, func(i int) {
		r.drawInstance(sc, r.handles[i])
	})
	r.addStats(&sc.stats)
	r.barriers[0].WaitHere(threads)

	r.bins.ForEachTile(r.raster.Draw, r.flush)
	r.barriers[1].WaitHere(threads)

	frame := shader.Frame{
		Width:  r.target.Width,
		Height: r.target.Height,
		Color:  r.target.Color,
		Depth:  r.target.Depth,
		Normal: r.target.Normal,
	}
	dst := r.output.Front()
	for {
		lo, hi, ok := r.pixels.Claim(pixelBatch)
		if !ok {
			return
		}
		frame.Run(dst, lo, hi, r.shade)
	}
}

// flush copies a finished tile into the target and readies its colour
// scratch for the next frame.
func (r *Renderer) flush(t *binner.Tile) {
	r.target.Flush(t.X0, t.Y0, t.Width(), t.Height(), t.Side, t.Color, t.Depth, t.Normal)
	t.ResetColor(r.config.ClearColor)
}

// lockScene read-locks the scene stores until unlockScene. Writers wait
// for the frame to finish.
func (r *Renderer) lockScene() {
	if r.locked {
		return
	}
	r.scene.Textures.RLock()
	r.scene.Meshes.RLock()
	r.scene.Instances.RLock()
	r.locked = true
}

func (r *Renderer) unlockScene() {
	if !r.locked {
		return
	}
	r.scene.Instances.RUnlock()
	r.scene.Meshes.RUnlock()
	r.scene.Textures.RUnlock()
	r.locked = false
}
