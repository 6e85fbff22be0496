// Package mercator converts slippy-map tile addresses to Web Mercator
// bounding boxes for ArcGIS-style export endpoints.
package mercator

import "math"

const (
	// EarthRadius is the equatorial radius of the WGS84 spheroid in meters.
	EarthRadius = 6378137.0

	// SpatialReference is the Web Mercator auxiliary sphere well-known ID
	// used by ArcGIS services (equivalent to EPSG:3857).
	SpatialReference = 102100

	// TileSize is the edge length of a tile in pixels.
	TileSize = 256

	// latLimit keeps the Mercator Y formula away from the pole singularity.
	latLimit = 89.9999
)

// GeoBounds is a tile footprint in degrees longitude/latitude.
type GeoBounds struct {
	West  float64
	South float64
	East  float64
	North float64
}

// Bounds is a tile footprint in Web Mercator meters.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// TileLon returns the longitude of a tile's west edge at the given column.
// Column+1 yields the east edge.
func TileLon(col, zoom float64) float64 {
	return col/math.Exp2(zoom)*360 - 180
}

// TileLat returns the latitude of a tile's north edge at the given row.
// Row+1 yields the south edge. Rows count down from the north, so the
// smaller row index maps to the larger latitude.
func TileLat(row, zoom float64) float64 {
	n := math.Pi - 2*math.Pi*row/math.Exp2(zoom)
	return 180 / math.Pi * math.Atan(math.Sinh(n))
}

// Project converts degrees longitude/latitude to Web Mercator meters.
// Latitude is clamped to ±89.9999° so the tangent stays finite.
func Project(lon, lat float64) (x, y float64) {
	lat = math.Max(-latLimit, math.Min(latLimit, lat))
	x = lon * EarthRadius * math.Pi / 180
	y = EarthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return x, y
}

// TileGeoBounds returns the geographic footprint of tile (zoom, col, row).
// Indices are not range-checked; out-of-range tiles produce an off-world
// but well-formed box, which the upstream renders as an empty tile.
func TileGeoBounds(zoom, col, row float64) GeoBounds {
	return GeoBounds{
		West:  TileLon(col, zoom),
		South: TileLat(row+1, zoom),
		East:  TileLon(col+1, zoom),
		North: TileLat(row, zoom),
	}
}

// TileBounds returns the Web Mercator footprint of tile (zoom, col, row).
// The box is spanned by the projected southwest and northeast corners.
func TileBounds(zoom, col, row float64) Bounds {
	g := TileGeoBounds(zoom, col, row)
	minX, minY := Project(g.West, g.South)
	maxX, maxY := Project(g.East, g.North)
	return Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}
