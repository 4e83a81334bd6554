package geodata

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mcorte/mapoverlay/dcel"
	"github.com/mcorte/mapoverlay/point"
)

// ReadGeoJSON reads the polygon rings of a GeoJSON FeatureCollection.
//
// Only Polygon geometries are accepted, and only flat ones: features of any
// other geometry type and polygons with interior rings are rejected with a
// DcelError. The final coordinate of each ring, which GeoJSON requires to
// duplicate the first, is discarded.
func ReadGeoJSON(path string) ([][]dcel.Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var polygons [][]dcel.Edge
	for _, feature := range fc.Features {
		poly, ok := feature.Geometry.(orb.Polygon)
		if !ok {
			return nil, dcel.DcelError{Message: fmt.Sprintf("unsupported geometry type %s, only polygons are accepted", feature.Geometry.GeoJSONType())}
		}
		if len(poly) > 1 {
			return nil, dcel.DcelError{Message: "polygons with holes are not supported"}
		}

		outer := []orb.Point(poly[0])
		if len(outer) > 1 && outer[0] == outer[len(outer)-1] {
			outer = outer[:len(outer)-1]
		}

		ring := make([]dcel.Edge, 0, len(outer))
		for i := range outer {
			next := outer[(i+1)%len(outer)]
			ring = append(ring, dcel.Edge{
				Origin:      point.New(outer[i].X(), outer[i].Y()),
				Destination: point.New(next.X(), next.Y()),
			})
		}
		polygons = append(polygons, ring)
	}

	return polygons, nil
}
