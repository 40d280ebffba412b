package tetio

import "sync"

// EleStream overlaps tetrahedron serialization with whatever is still
// producing them, following the teacher's channel-fed writer idiom
// (render/fewrite.go's writeFE, render/vertex.go's writeVertices): a
// goroutine drains a channel while the caller's own loop keeps running.
// Unlike the teacher's writers, a .ele file's header needs the final
// tetrahedron count before any row can be written, so this accumulates
// into an EleFile rather than writing straight to disk; Close blocks
// until every batch is drained and returns the file ready for WriteEle.
// This is I/O overlap, not algorithmic parallelism — the mesh algorithms
// themselves stay single-threaded (spec.md §5).
type EleStream struct {
	wg sync.WaitGroup
	ch chan []EleRow
	ef *EleFile
}

// NewEleStream starts the accumulator goroutine.
func NewEleStream(corners, nAttrs, firstIndex int) *EleStream {
	s := &EleStream{
		ch: make(chan []EleRow),
		ef: &EleFile{FirstIndex: firstIndex, Corners: corners, NAttrs: nAttrs},
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for batch := range s.ch {
			s.ef.Tets = append(s.ef.Tets, batch...)
		}
	}()
	return s
}

// Send enqueues a batch of rows, blocking until the accumulator goroutine
// is ready to receive it.
func (s *EleStream) Send(rows []EleRow) { s.ch <- rows }

// Close signals no more batches are coming and waits for the
// accumulator to finish, returning the assembled file.
func (s *EleStream) Close() *EleFile {
	close(s.ch)
	s.wg.Wait()
	return s.ef
}
