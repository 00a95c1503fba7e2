package framebuffer

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
)

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ARGB8888"); err != nil || f != ARGB8888 {
		t.Errorf("ParseFormat(ARGB8888): got %q %v", f, err)
	}
	if _, err := ParseFormat("rgb565"); !errors.Is(err, ErrFormatNotImplemented) {
		t.Errorf("ParseFormat(rgb565): got %v, want ErrFormatNotImplemented", err)
	}
	if _, err := New(4, 4, "bgra"); !errors.Is(err, ErrFormatNotImplemented) {
		t.Errorf("New with bad format: got %v", err)
	}
}

func TestFlipSwapsHalves(t *testing.T) {
	fb, err := New(2, 2, ARGB8888)
	if err != nil {
		t.Fatal(err)
	}
	fb.Front()[0] = 0xABCDEF
	fb.Flip()

	var got uint32
	fb.Present(func(px []uint32, w, h int) {
		got = px[0]
		if w != 2 || h != 2 {
			t.Errorf("present size: got %dx%d", w, h)
		}
	})
	if got != 0xABCDEF {
		t.Errorf("presented pixel: got %x, want abcdef", got)
	}
	if fb.Front()[0] != 0 {
		t.Error("new front half should be the untouched one")
	}
}

// Each half carries an exchange flag: 0 idle, 1 written, 2 read. Any
// failed swap means both sides touched the same half at once.
func TestDoubleBufferExclusivity(t *testing.T) {
	fb, err := New(16, 16, ARGB8888)
	if err != nil {
		t.Fatal(err)
	}

	var state [2]atomic.Int32
	var conflicts atomic.Int64
	var done atomic.Bool
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for !done.Load() {
			fb.Present(func(px []uint32, _, _ int) {
				half := fb.Phase() ^ 1
				if !state[half].CompareAndSwap(0, 2) {
					conflicts.Add(1)
					return
				}
				_ = px[len(px)-1]
				state[half].Store(0)
			})
		}
	}()

	for frame := 0; frame < 2000; frame++ {
		half := fb.Phase()
		if !state[half].CompareAndSwap(0, 1) {
			conflicts.Add(1)
		} else {
			front := fb.Front()
			for i := range front {
				front[i] = uint32(frame)
			}
			state[half].Store(0)
		}
		fb.Flip()
	}
	done.Store(true)
	wg.Wait()

	if n := conflicts.Load(); n != 0 {
		t.Errorf("%d overlapping accesses to one half", n)
	}
}

func TestTargetFlush(t *testing.T) {
	tg := NewTarget(4, 3)
	if !math.IsInf(float64(tg.Depth[0]), 1) {
		t.Fatal("new target depth should be +Inf")
	}

	// 2x2 block with stride 3 into (1, 1).
	color := []uint32{1, 2, 99, 3, 4, 99}
	depth := []float32{0.1, 0.2, 9, 0.3, 0.4, 9}
	normal := []uint32{5, 6, 99, 7, 8, 99}
	tg.Flush(1, 1, 2, 2, 3, color, depth, normal)

	wantColor := []uint32{
		0, 0, 0, 0,
		0, 1, 2, 0,
		0, 3, 4, 0,
	}
	for i, want := range wantColor {
		if tg.Color[i] != want {
			t.Errorf("color[%d]: got %d, want %d", i, tg.Color[i], want)
		}
	}
	if tg.Depth[10] != 0.4 || tg.Normal[5] != 5 {
		t.Errorf("depth/normal not flushed: %v %v", tg.Depth[10], tg.Normal[5])
	}

	tg.Clear(0xFF)
	tg.ClearDepth()
	if tg.Color[5] != 0xFF || tg.Normal[5] != 0 || !math.IsInf(float64(tg.Depth[10]), 1) {
		t.Error("clear did not reset buffers")
	}
}
