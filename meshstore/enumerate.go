package meshstore

// EnumerateStar returns every live tetrahedron incident to vertex v
// (spec.md §4.2's enumerate_star). Vertex stars are small (typically a
// few dozen tets even on refined meshes), so this returns a materialized
// slice rather than a generator; the result is "restartable" in the
// sense spec.md requires — calling it again after mutation re-walks from
// scratch and reflects the current mesh, there is no retained cursor to
// invalidate.
func (m *MeshStore) EnumerateStar(v VertexID) []TetID {
	start := m.Vertices.Get(v).Incident
	if start == NoTet || !m.Tets.IsLive(start) {
		return nil
	}
	visited := map[TetID]bool{start: true}
	queue := []TetID{start}
	out := []TetID{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t := m.Tets.Get(cur)
		vi := t.IndexOf(v)
		if vi == -1 {
			continue
		}
		for i := 0; i < 4; i++ {
			if i == vi {
				continue // face opposite v never contains v
			}
			nb := t.Nbr[i]
			if nb == NoTet || visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
			out = append(out, nb)
		}
	}
	return out
}

// EnumerateEdgeRing returns every live tetrahedron incident to the edge
// (u,w) (spec.md §4.2's enumerate_edge_ring), built atop EnumerateStar
// since edge rings are a subset of one endpoint's star.
func (m *MeshStore) EnumerateEdgeRing(u, w VertexID) []TetID {
	var out []TetID
	for _, id := range m.EnumerateStar(u) {
		t := m.Tets.Get(id)
		if t.IndexOf(w) != -1 {
			out = append(out, id)
		}
	}
	return out
}
