// Package pipeline compiles regions into a mesh:
//
//	triangulate (per region, concurrently) -> index (sequential fold)
//	  -> antimeridian wraparound -> insets, in configuration order
//
// Any failure aborts the build; there is no partial mesh.
package pipeline

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/irfansharif/cartomesh/internal/config"
	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/mesh"
	"github.com/irfansharif/cartomesh/internal/region"
	"github.com/irfansharif/cartomesh/internal/triangulate"
)

var pipelineLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("CARTOMESH_DEBUG_PIPELINE") == "1" {
		pipelineLogger = log.New(os.Stdout, "[pipeline] ", log.Ltime|log.Lmsgprefix)
	}
}

// Build compiles regions into a mesh according to cfg. Zero-valued fields of
// cfg take their config.Default values.
func Build(ctx context.Context, regions []region.Region, cfg config.Config) (*mesh.Mesh, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, err := triangulate.ByName(cfg.Triangulator)
	if err != nil {
		return nil, err
	}

	// Excluded regions are not triangulated.
	exclude := cfg.ExcludeSet()
	included := make([]region.Region, 0, len(regions))
	for _, r := range regions {
		if !exclude[r.Name] {
			included = append(included, r)
		}
	}

	start := time.Now()
	results, err := region.AssembleAll(ctx, included, fn, cfg.Workers)
	if err != nil {
		return nil, err
	}
	triangles := make(map[string][]geom.Triangle, len(included))
	for i, r := range included {
		triangles[r.Name] = results[i]
		pipelineLogger.Printf("%-24s %3d rings %6d points %6d triangles", r.Name, len(r.Rings), r.Vertices(), len(results[i]))
	}
	pipelineLogger.Printf("triangulated %d regions (%d excluded) in %s with %s",
		len(included), len(regions)-len(included), time.Since(start), cfg.Triangulator)

	start = time.Now()
	m, err := mesh.Index(regions, triangles, exclude)
	if err != nil {
		return nil, err
	}
	pipelineLogger.Printf("indexed %d vertices, %d triangles in %s", m.VertexCount(), m.TriangleCount(), time.Since(start))

	moved := m.Wraparound(cfg.WrapThreshold)
	pipelineLogger.Printf("wrapped %d vertices past x=%v", moved, cfg.WrapThreshold)

	for _, in := range cfg.Insets {
		if err := m.Transform(in.Region, in.Scale, in.OffsetPoint()); err != nil {
			return nil, err
		}
		pipelineLogger.Printf("inset %s: scale %v, offset %v", in.Region, in.Scale, in.Offset)
	}
	return m, nil
}
