// Package region implements spec.md §4.5: classifying the Delaunay
// tetrahedralization's tets as exterior, hole, or interior space by
// flooding across non-subface faces from the ghost layer and from hole
// seed points, stamping region attributes and volume bounds over the
// interior via region seed points, and finally discarding every
// exterior/hole tet and repairing the ghost layer at the new boundary.
package region

import (
	"github.com/sunpia/tetgen/meshlog"
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/vec3"
)

// Tag classifies a tetrahedron after carving.
type Tag uint8

const (
	Exterior Tag = iota
	Hole
	Interior
)

// Seed is a region attribute seed point (spec.md §4.5 "region" switch):
// every tet reachable from Point without crossing a subface is stamped
// with Attribute and, if MaxVolume is positive, that per-tet volume
// bound.
type Seed struct {
	Point     vec3.Vec
	Attribute int32
	MaxVolume float64
}

// Carver classifies and carves a mesh in place.
type Carver struct {
	store *meshstore.MeshStore
	log   *meshlog.Logger
}

// New returns a Carver operating on store.
func New(store *meshstore.MeshStore) *Carver {
	return &Carver{store: store, log: meshlog.Default("region")}
}

// Carve floods EXTERIOR from the ghost layer and HOLE from each hole
// seed, stamps region attributes from each region seed, then deletes
// every EXTERIOR/HOLE tet and rebuilds the ghost layer around what
// remains. Unreachable hole/region seeds (those landing outside the
// whole triangulation) are warned about and ignored, per spec.md §4.7.
func (c *Carver) Carve(holes []vec3.Vec, seeds []Seed) error {
	classify := map[meshstore.TetID]Tag{}

	var ghosts []meshstore.TetID
	for id := meshstore.TetID(0); int(id) < c.store.Tets.Len(); id++ {
		if !c.store.Tets.IsLive(id) {
			continue
		}
		if c.store.Tets.Get(id).IsGhost() {
			classify[id] = Exterior
			ghosts = append(ghosts, id)
		}
	}
	c.flood(classify, ghosts, Exterior)

	for _, h := range holes {
		loc, err := c.store.Locate(h)
		if err != nil {
			return err
		}
		if c.store.Tets.Get(loc.Tet).IsGhost() {
			c.log.Warn("hole seed %v lies outside the triangulation, ignoring", h)
			continue
		}
		if _, ok := classify[loc.Tet]; ok {
			continue
		}
		classify[loc.Tet] = Hole
		c.flood(classify, []meshstore.TetID{loc.Tet}, Hole)
	}

	for _, s := range seeds {
		loc, err := c.store.Locate(s.Point)
		if err != nil {
			return err
		}
		if c.store.Tets.Get(loc.Tet).IsGhost() {
			c.log.Warn("region seed %v lies outside the triangulation, ignoring", s.Point)
			continue
		}
		if tag, ok := classify[loc.Tet]; ok && tag != Interior {
			c.log.Warn("region seed %v lies in exterior/hole space, ignoring", s.Point)
			continue
		}
		c.stamp(classify, loc.Tet, s)
	}

	return c.deleteAndRepair(classify)
}

// flood marks every tet reachable from start via a non-subface face
// (FaceMarker == -1) and not already classified.
func (c *Carver) flood(classify map[meshstore.TetID]Tag, start []meshstore.TetID, tag Tag) {
	queue := append([]meshstore.TetID{}, start...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		t := c.store.Tets.Get(id)
		for f := 0; f < 4; f++ {
			if t.FaceMarker[f] != -1 {
				continue
			}
			nb := t.Nbr[f]
			if nb == meshstore.NoTet {
				continue
			}
			if _, ok := classify[nb]; ok {
				continue
			}
			classify[nb] = tag
			queue = append(queue, nb)
		}
	}
}

// stamp marks every tet reachable from start through non-subface faces
// and not already EXTERIOR/HOLE with s's attribute and volume bound.
func (c *Carver) stamp(classify map[meshstore.TetID]Tag, start meshstore.TetID, s Seed) {
	visited := map[meshstore.TetID]bool{start: true}
	queue := []meshstore.TetID{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		t := c.store.Tets.Get(id)
		t.Region = s.Attribute
		if s.MaxVolume > 0 {
			t.HasVolBnd = true
			t.MaxVolume = s.MaxVolume
		}
		for f := 0; f < 4; f++ {
			if t.FaceMarker[f] != -1 {
				continue
			}
			nb := t.Nbr[f]
			if visited[nb] {
				continue
			}
			if _, removed := classify[nb]; removed {
				continue
			}
			if c.store.Tets.Get(nb).IsGhost() {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
}
