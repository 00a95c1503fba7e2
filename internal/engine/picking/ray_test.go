package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tilerast/internal/engine/camera"
	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/pkg/math"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-3
}

func TestScreenRayCentre(t *testing.T) {
	vp := camera.New().Viewport(100, 100, 1)
	r := ScreenRay(&vp, 50, 50)

	if !near(r.Origin.Z, 1) || !near(r.Origin.X, 0) || !near(r.Origin.Y, 0) {
		t.Errorf("origin: got %v, want (0, 0, 1)", r.Origin)
	}
	if !near(r.Dir.Z, 1) {
		t.Errorf("dir: got %v, want +z", r.Dir)
	}
}

func TestScreenRayInvertsProject(t *testing.T) {
	cam := camera.New()
	cam.Pos = math.Vec3{X: 1, Y: 2, Z: -3}
	cam.Yaw, cam.Pitch = 0.4, -0.2
	vp := cam.Viewport(160, 90, 1)

	points := []math.Vec3{
		{X: 2, Y: 1, Z: 6},
		{X: -1, Y: 3, Z: 10},
		{X: 1.5, Y: 2.5, Z: 2},
	}
	for _, p := range points {
		c := vp.ToCamera(p)
		if c.Z < vp.Near {
			t.Fatalf("test point %v behind camera", p)
		}
		s := vp.Project(c)
		r := ScreenRay(&vp, s.X, s.Y)

		// Distance from p to the ray line.
		along := p.Sub(r.Origin).Dot(r.Dir)
		if d := r.At(along).Distance(p); d > 1e-2 {
			t.Errorf("point %v: ray misses by %v", p, d)
		}
	}
}

func TestIntersectBounds(t *testing.T) {
	box := mesh.Bounds{Min: math.Vec3{X: -1, Y: -1, Z: 4}, Max: math.Vec3{X: 1, Y: 1, Z: 6}}
	fwd := math.Vec3{Z: 1}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{Origin: math.Vec3{}, Dir: fwd}, true, 4},
		{"inside", Ray{Origin: math.Vec3{Z: 5}, Dir: fwd}, true, 1},
		{"behind", Ray{Origin: math.Vec3{Z: 8}, Dir: fwd}, false, 0},
		{"beside", Ray{Origin: math.Vec3{X: 2}, Dir: fwd}, false, 0},
		{"parallel outside", Ray{Origin: math.Vec3{Y: 3}, Dir: math.Vec3{X: 1}}, false, 0},
		{"diagonal", Ray{Origin: math.Vec3{X: -4, Z: 5}, Dir: math.Vec3{X: 1}}, true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBounds(box)
			if hit != tt.hit {
				t.Fatalf("hit: got %v, want %v", hit, tt.hit)
			}
			if hit && !near(got, tt.wantT) {
				t.Errorf("t: got %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestPickNearest(t *testing.T) {
	meshes := mesh.NewRegistry("")
	cube, err := mesh.New("cube", mesh.LOD{Geometry: mesh.Cube(1, 0, geometry.White, 0)})
	if err != nil {
		t.Fatal(err)
	}
	plank, err := mesh.New("plank", mesh.LOD{Geometry: mesh.Cube(1, 0, geometry.White, 0)})
	if err != nil {
		t.Fatal(err)
	}
	// Long along x only.
	plank.LODs[0].Geometry = &mesh.Geometry{}
	plank.LODs[0].Geometry.AddVertex(math.Vec3{X: -4, Y: -0.5, Z: -0.5})
	plank.LODs[0].Geometry.AddVertex(math.Vec3{X: 4, Y: 0.5, Z: 0.5})
	ci := meshes.Add(cube)
	pi := meshes.Add(plank)

	instances := mesh.NewInstances(1)
	far := instances.Add(0, mesh.Instance{Pos: math.Vec3{Z: 10}, Mesh: ci, Visible: true})
	instances.Add(0, mesh.Instance{Pos: math.Vec3{X: 5, Z: 3}, Mesh: ci, Visible: true})
	instances.Add(0, mesh.Instance{Pos: math.Vec3{Z: 2}, Mesh: ci, Visible: true, ViewModel: true})
	// Rotated a quarter turn about y the plank lies along z, off to the side.
	rotated := instances.Add(0, mesh.Instance{Pos: math.Vec3{X: 3, Z: 6}, Mesh: pi, Yaw: math32.Pi / 2, Visible: true})

	handles := instances.Snapshot(nil)
	centre := Ray{Dir: math.Vec3{Z: 1}}

	hit, ok := Pick(centre, handles, instances, meshes)
	if !ok || hit.Handle != far {
		t.Fatalf("centre pick: got %+v %v, want far cube", hit, ok)
	}
	if !near(hit.T, 9) {
		t.Errorf("centre t: got %v, want 9", hit.T)
	}

	side := Ray{Origin: math.Vec3{X: 3}, Dir: math.Vec3{Z: 1}}
	hit, ok = Pick(side, handles, instances, meshes)
	if !ok || hit.Handle != rotated {
		t.Fatalf("side pick: got %+v %v, want rotated plank", hit, ok)
	}
	if !near(hit.T, 2) {
		t.Errorf("side t: got %v, want 2", hit.T)
	}

	if _, ok := Pick(Ray{Origin: math.Vec3{Y: 10}, Dir: math.Vec3{Z: 1}}, handles, instances, meshes); ok {
		t.Error("expected miss above the scene")
	}
}
