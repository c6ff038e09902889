// Package source turns boundary files on disk into regions. It reads ESRI
// shapefiles and GeoJSON feature collections; fetching and unpacking archives
// is left to the caller.
//
// Both readers merge records that share a name into one region, in the order
// names are first seen, drop explicitly repeated closing points and collapse
// consecutive duplicates. Holes are rejected: the mesh compiler triangulates
// every ring on its own, so a ring with a hole must be pre-split.
package source

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/region"
)

var sourceLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("CARTOMESH_DEBUG_SOURCE") == "1" {
		sourceLogger = log.New(os.Stdout, "[source] ", log.Ltime|log.Lmsgprefix)
	}
}

// collector accumulates rings per region name, remembering first-seen order.
type collector struct {
	order []string
	rings map[string][]geom.Ring
}

func newCollector() *collector {
	return &collector{rings: make(map[string][]geom.Ring)}
}

func (c *collector) add(name string, rings ...geom.Ring) {
	if _, ok := c.rings[name]; !ok {
		c.order = append(c.order, name)
	}
	c.rings[name] = append(c.rings[name], rings...)
}

func (c *collector) regions() []region.Region {
	out := make([]region.Region, len(c.order))
	for i, name := range c.order {
		out[i] = region.Region{Name: name, Rings: c.rings[name]}
	}
	return out
}

// Read dispatches on the file extension: .shp files are read as shapefiles,
// .json and .geojson files as GeoJSON.
func Read(path, nameField string) ([]region.Region, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".shp":
		return ReadShapefile(path, nameField)
	case ".json", ".geojson":
		return ReadGeoJSON(path, nameField)
	default:
		return nil, fmt.Errorf("%s: unsupported boundary file type %q", path, ext)
	}
}
