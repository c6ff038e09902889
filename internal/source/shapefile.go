package source

import (
	"fmt"
	"strings"

	"gitee.com/LJ_COOL/go-shp"

	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/region"
)

// ReadShapefile reads the polygon records of a shapefile, naming each region
// by the nameField attribute. Shapefile outer rings wind clockwise; a
// counter-clockwise part is a hole and is rejected.
func ReadShapefile(path, nameField string) ([]region.Region, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer reader.Close()

	fields := reader.Fields()
	nameIdx := -1
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
		if names[i] == nameField {
			nameIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%s: no attribute %q (have %s)", path, nameField, strings.Join(names, ", "))
	}

	c := newCollector()
	for reader.Next() {
		n, shape := reader.Shape()

		var parts []int32
		var points []shp.Point
		switch s := shape.(type) {
		case *shp.Polygon:
			parts, points = s.Parts, s.Points
		case *shp.PolygonZ:
			parts, points = s.Parts, s.Points
		case *shp.PolygonM:
			parts, points = s.Parts, s.Points
		case *shp.Null:
			sourceLogger.Printf("%s: record %d has no geometry, skipping", path, n)
			continue
		default:
			return nil, fmt.Errorf("%s: record %d: unsupported shape type %T", path, n, shape)
		}

		name := strings.Trim(reader.ReadAttribute(n, nameIdx), " \x00")
		if name == "" {
			return nil, fmt.Errorf("%s: record %d: empty %s attribute", path, n, nameField)
		}

		rings := splitParts(points, parts)
		for i, ring := range rings {
			if ring.Winding() > 0 {
				return nil, fmt.Errorf("%s: record %d (%s) part %d is a hole; holes are not supported", path, n, name, i)
			}
		}
		sourceLogger.Printf("%s: record %d %q: %d parts, %d points", path, n, name, len(parts), len(points))
		c.add(name, rings...)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c.regions(), nil
}

// splitParts cuts a record's point array at the part offsets, one ring per
// part.
func splitParts(points []shp.Point, parts []int32) []geom.Ring {
	rings := make([]geom.Ring, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i < len(parts)-1 {
			end = parts[i+1]
		}
		ring := make(geom.Ring, 0, end-start)
		for _, p := range points[start:end] {
			ring = append(ring, geom.MakePoint(p.X, p.Y))
		}
		rings = append(rings, ring.Compact())
	}
	return rings
}
