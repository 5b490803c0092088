package core

import (
	"log"
	"math/rand"

	cfg "github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/tags"
	"github.com/solarlune/resolv"
)

// arenaScale is the number of resolv space units per world unit; resolv
// cells are integers, so world units are scaled up before collision.
const arenaScale = 16

const wallThickness = 1.0

// spaceCoord maps a world coordinate into the resolv space, whose origin is
// the outer corner of the walls.
func spaceCoord(v float64) float64 { return (v + wallThickness) * arenaScale }

func worldCoord(v float64) float64 { return v/arenaScale - wallThickness }

// Arena holds the collision space the simulated agents wander in.
type Arena struct {
	Space  *resolv.Space
	Width  float64 // World units
	Height float64
}

// NewArena builds a walled rectangle with randomly placed square pillars.
func NewArena(sc cfg.ServerConfig, rng *rand.Rand) *Arena {
	w, h := float64(sc.ArenaWidth), float64(sc.ArenaHeight)
	space := resolv.NewSpace(
		int((w+2*wallThickness)*arenaScale),
		int((h+2*wallThickness)*arenaScale),
		arenaScale, arenaScale,
	)
	a := &Arena{Space: space, Width: w, Height: h}

	// Walls sit outside [0,w]x[0,h]
	a.addSolid(-wallThickness, -wallThickness, w+2*wallThickness, wallThickness, tags.ResolvSolid)
	a.addSolid(-wallThickness, h, w+2*wallThickness, wallThickness, tags.ResolvSolid)
	a.addSolid(-wallThickness, 0, wallThickness, h, tags.ResolvSolid)
	a.addSolid(w, 0, wallThickness, h, tags.ResolvSolid)

	for i := 0; i < sc.Pillars; i++ {
		size := 1 + rng.Float64()*2
		x := 3 + rng.Float64()*(w-6-size)
		z := 3 + rng.Float64()*(h-6-size)
		a.addSolid(x, z, size, size, tags.ResolvSolid, tags.ResolvPillar)
	}

	log.Printf("Arena: %.0fx%.0f units, %d pillars", w, h, sc.Pillars)
	return a
}

func (a *Arena) addSolid(x, z, w, h float64, labels ...string) {
	obj := resolv.NewObject(spaceCoord(x), spaceCoord(z), w*arenaScale, h*arenaScale, labels...)
	obj.SetShape(resolv.NewRectangle(0, 0, w*arenaScale, h*arenaScale))
	a.Space.Add(obj)
}

// NewBody adds a square agent body centered on (x, z).
func (a *Arena) NewBody(x, z, size float64) *resolv.Object {
	s := size * arenaScale
	obj := resolv.NewObject(spaceCoord(x)-s/2, spaceCoord(z)-s/2, s, s, tags.ResolvAgent)
	obj.SetShape(resolv.NewRectangle(0, 0, s, s))
	a.Space.Add(obj)
	return obj
}

// Free reports whether a body of the given size centered on (x, z) would
// touch nothing solid.
func (a *Arena) Free(x, z, size float64) bool {
	probe := a.NewBody(x, z, size)
	defer a.Space.Remove(probe)
	return len(blockers(probe, 0, 0)) == 0
}

// blockers returns the solids obj would overlap after moving by (dx, dy).
// resolv reports everything sharing a cell, so candidates are narrowed to
// true box overlaps.
func blockers(obj *resolv.Object, dx, dy float64) []*resolv.Object {
	check := obj.Check(dx, dy, tags.ResolvSolid)
	if check == nil {
		return nil
	}
	var out []*resolv.Object
	for _, o := range check.ObjectsByTags(tags.ResolvSolid) {
		if overlaps(obj.X+dx, obj.Y+dy, obj.W, obj.H, o) {
			out = append(out, o)
		}
	}
	return out
}

func overlaps(x, y, w, h float64, o *resolv.Object) bool {
	return x < o.X+o.W && o.X < x+w && y < o.Y+o.H && o.Y < y+h
}
