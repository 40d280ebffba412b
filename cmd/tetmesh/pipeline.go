package main

import (
	"context"
	"math"

	"github.com/sunpia/tetgen/behavior"
	"github.com/sunpia/tetgen/constraint"
	"github.com/sunpia/tetgen/delaunay"
	"github.com/sunpia/tetgen/meshlog"
	"github.com/sunpia/tetgen/meshstore"
	"github.com/sunpia/tetgen/refine"
	"github.com/sunpia/tetgen/region"
	"github.com/sunpia/tetgen/vec3"
)

// buildSeed is the BRIO/locate tie-breaking seed: fixed so two runs over
// the same input and switches are bit-identical (spec.md §5 / P9). The
// switch grammar has no seed switch of its own, so this is a module
// constant rather than something behavior.Behavior carries.
const buildSeed = 1

// result is everything the pipeline produced, ready for writeOutputs.
type result struct {
	store    *meshstore.MeshStore
	segments []refine.Segment
}

// tetrahedralize runs the full pipeline of spec.md §2 over in: Delaunay
// build, then (unless -c asks for a bare convex hull) PLC facet recovery
// and region/hole carving, then (if -q or -a ask for it) quality
// refinement.
func tetrahedralize(ctx context.Context, in *inputMesh, b behavior.Behavior, log *meshlog.Logger) (*result, error) {
	builder := delaunay.NewBuilder(buildSeed)
	ids, err := builder.Build(in.points)
	if err != nil {
		return nil, err
	}
	store := builder.Store()

	var segments []refine.Segment
	if b.PLC && !b.Convex && len(in.facets) > 0 {
		segments, err = recoverPLC(store, in, ids, log)
		if err != nil {
			return nil, err
		}

		holes := remapPoints(in.holes)
		seeds := make([]region.Seed, len(in.regions))
		for i, r := range in.regions {
			seeds[i] = region.Seed{Point: vec3.Vec{X: r.Point[0], Y: r.Point[1], Z: r.Point[2]}, Attribute: r.Attribute, MaxVolume: r.MaxVolume}
		}
		if err := region.New(store).Carve(holes, seeds); err != nil {
			return nil, err
		}
	}

	if b.Conforming {
		log.Warn("-D conforming Delaunay is not implemented; falling back to plain constrained recovery")
	}
	if b.VoroOut {
		log.Warn("-v Voronoi emission is not implemented; no .v.node/.v.edge will be written")
	}
	if b.Order == 2 {
		log.Warn("-o2 quadratic elements are not implemented; emitting linear (4-corner) tetrahedra")
	}

	if b.Quality || b.VarVolume {
		ratio := math.MaxFloat64
		if b.Quality {
			ratio = b.MinRatio
		}
		volume := -1.0
		if b.VarVolume {
			volume = b.MaxVolume
		}
		r := refine.New(store, segments, refine.Options{
			RadiusEdgeRatio: ratio,
			GlobalMaxVolume: volume,
			SteinerCap:      b.Steiner,
			NoBisect:        b.NoBisect,
		})
		if err := r.Refine(ctx); err != nil {
			if merr, ok := err.(*meshlog.Error); ok && merr.Kind == meshlog.Budget {
				log.Warn("%s", merr.Error())
			} else {
				return nil, err
			}
		}
	}

	return &result{store: store, segments: segments}, nil
}

// recoverPLC recovers every facet of in.facets into store and returns the
// true input segments (each facet ring's own boundary edges, not the
// ear-clip diagonals RecoverFacet also recovers internally) for refine to
// protect. ids maps in.points' index (as read from the .poly/.node file)
// to the arena VertexID delaunay.Build assigned it.
func recoverPLC(store *meshstore.MeshStore, in *inputMesh, ids []meshstore.VertexID, log *meshlog.Logger) ([]refine.Segment, error) {
	rec := constraint.New(store)
	var segments []refine.Segment
	for _, f := range in.facets {
		cf := constraint.Facet{Marker: f.marker}
		for _, poly := range f.polygons {
			verts := make([]meshstore.VertexID, len(poly))
			for i, idx := range poly {
				verts[i] = ids[idx]
			}
			cf.Polygons = append(cf.Polygons, constraint.Polygon{Verts: verts})
		}
		if _, err := rec.RecoverFacet(cf); err != nil {
			return nil, err
		}

		ring := cf.Polygons[0].Verts
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			chain, err := rec.RecoverSegment(a, b)
			if err != nil {
				return nil, err
			}
			for i := 0; i+1 < len(chain); i++ {
				segments = append(segments, refine.Segment{A: chain[i], B: chain[i+1], Marker: f.marker})
			}
		}
	}
	log.Info("recovered %d facets into %d tracked boundary segments", len(in.facets), len(segments))
	return segments, nil
}

func remapPoints(pts [][3]float64) []vec3.Vec {
	out := make([]vec3.Vec, len(pts))
	for i, p := range pts {
		out[i] = vec3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}
