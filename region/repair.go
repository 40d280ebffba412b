package region

import "github.com/sunpia/tetgen/meshstore"

// edgeKey identifies an undirected vertex pair, used to pair up the new
// boundary ghosts' side faces the same way meshstore.FillCavity pairs up
// a cavity's new tets.
type edgeKey struct{ lo, hi meshstore.VertexID }

func makeEdgeKey(a, b meshstore.VertexID) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

type boundaryFace struct {
	keptTet meshstore.TetID
	face    int
}

// deleteAndRepair discards every EXTERIOR/HOLE tetrahedron, then rebuilds
// the ghost layer over the faces newly exposed on the kept tets' side of
// that boundary, following the same ghost-construction convention
// MeshStore.Bootstrap uses for a hull face (V = {Infinite, p0, p2, p1}
// bonded back to the owning face), and the same pairUp-by-shared-edge
// technique MeshStore.FillCavity uses to link new tets to each other.
// Vertices left touching nothing live afterward (wholly inside the
// discarded space) are deleted too.
func (c *Carver) deleteAndRepair(classify map[meshstore.TetID]Tag) error {
	store := c.store

	var boundaries []boundaryFace
	for id := meshstore.TetID(0); int(id) < store.Tets.Len(); id++ {
		if !store.Tets.IsLive(id) {
			continue
		}
		if _, removed := classify[id]; removed {
			continue
		}
		t := store.Tets.Get(id)
		for f := 0; f < 4; f++ {
			if _, removed := classify[t.Nbr[f]]; removed {
				boundaries = append(boundaries, boundaryFace{keptTet: id, face: f})
			}
		}
	}

	for id := range classify {
		store.Untouch(id)
		store.Tets.Delete(id)
	}

	edges := map[edgeKey]struct {
		tet  meshstore.TetID
		face int
	}{}
	pairUp := func(tet meshstore.TetID, face int, a, b meshstore.VertexID) {
		key := makeEdgeKey(a, b)
		if other, ok := edges[key]; ok {
			store.BondFace(tet, face, other.tet, other.face)
			delete(edges, key)
			return
		}
		edges[key] = struct {
			tet  meshstore.TetID
			face int
		}{tet, face}
	}

	for _, bd := range boundaries {
		t := store.Tets.Get(bd.keptTet)
		fv := t.FaceVertices(bd.face)
		p0, p1, p2 := fv[0], fv[1], fv[2]

		ghost := store.Tets.Add(meshstore.Tetrahedron{
			V:          [4]meshstore.VertexID{meshstore.Infinite, p0, p2, p1},
			FaceMarker: [4]int32{-1, -1, -1, -1},
			Region:     -1,
		})
		store.BondFace(ghost, 0, bd.keptTet, bd.face)
		store.Touch(ghost)

		pairUp(ghost, 1, p1, p2)
		pairUp(ghost, 2, p2, p0)
		pairUp(ghost, 3, p0, p1)

		for _, v := range [3]meshstore.VertexID{p0, p1, p2} {
			store.Vertices.Get(v).Incident = bd.keptTet
		}
	}

	for id := meshstore.VertexID(0); int(id) < store.Vertices.Len(); id++ {
		if !store.Vertices.IsLive(id) {
			continue
		}
		if !store.Tets.IsLive(store.Vertices.Get(id).Incident) {
			store.Vertices.Delete(id)
		}
	}

	return nil
}
