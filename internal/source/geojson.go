package source

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/region"
)

// ReadGeoJSON reads the Polygon and MultiPolygon features of a GeoJSON
// feature collection, naming each region by the nameField property.
func ReadGeoJSON(path, nameField string) ([]region.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c := newCollector()
	for i, f := range fc.Features {
		name, ok := f.Properties[nameField].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("%s: feature %d has no string property %q", path, i, nameField)
		}

		var polygons []orb.Polygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			polygons = []orb.Polygon{g}
		case orb.MultiPolygon:
			polygons = g
		case nil:
			sourceLogger.Printf("%s: feature %d (%s) has no geometry, skipping", path, i, name)
			continue
		default:
			return nil, fmt.Errorf("%s: feature %d (%s): unsupported geometry %s", path, i, name, g.GeoJSONType())
		}

		for j, poly := range polygons {
			if len(poly) == 0 {
				continue
			}
			if len(poly) > 1 {
				return nil, fmt.Errorf("%s: feature %d (%s) polygon %d has %d holes; holes are not supported",
					path, i, name, j, len(poly)-1)
			}
			c.add(name, fromOrb(poly[0]))
		}
		sourceLogger.Printf("%s: feature %d %q: %d polygons", path, i, name, len(polygons))
	}
	return c.regions(), nil
}

func fromOrb(r orb.Ring) geom.Ring {
	ring := make(geom.Ring, len(r))
	for i, p := range r {
		ring[i] = geom.MakePoint(p.X(), p.Y())
	}
	return ring.Compact()
}
