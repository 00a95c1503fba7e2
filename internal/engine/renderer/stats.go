package renderer

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/tilerast/internal/engine/binner"
)

// Stats counts what happened to the scene during one frame.
type Stats struct {
	// Instances considered, before culling.
	Instances int
	// Culled instances outside the view or without a mesh.
	Culled    int
	Impostors int
	// Triangles stored in the binner.
	Triangles int
	// Clipped source triangles cut or removed by the near plane.
	Clipped   int
	BackFaces int
	OffScreen int
	// Dropped triangles that did not fit in the pool.
	Dropped int
	// Overflow is what the binner grew by at the start of the frame.
	Overflow binner.Overflow
}

func (s *Stats) add(o *Stats) {
	s.Instances += o.Instances
	s.Culled += o.Culled
	s.Impostors += o.Impostors
	s.Triangles += o.Triangles
	s.Clipped += o.Clipped
	s.BackFaces += o.BackFaces
	s.OffScreen += o.OffScreen
	s.Dropped += o.Dropped
	s.Overflow.Pool += o.Overflow.Pool
	s.Overflow.Bins += o.Overflow.Bins
}

// MarshalLogObject lets Stats be logged with zap.Object.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("instances", s.Instances)
	enc.AddInt("culled", s.Culled)
	enc.AddInt("impostors", s.Impostors)
	enc.AddInt("triangles", s.Triangles)
	enc.AddInt("clipped", s.Clipped)
	enc.AddInt("backfaces", s.BackFaces)
	enc.AddInt("offscreen", s.OffScreen)
	enc.AddInt("dropped", s.Dropped)
	return nil
}

func statsField(s Stats) zap.Field {
	return zap.Object("stats", s)
}
