package domain

// Candidate is one geocoding hit for a free-text query. The JSON tags are
// the persisted cache format, so an entry written to disk reloads field for
// field. Candidates are created only by provider calls and never mutated.
type Candidate struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Label  string  `json:"display"`
	Source string  `json:"source,omitempty"`
}

// Point is a resolved itinerary member: either a Candidate the caller
// picked or a manually supplied coordinate.
type Point struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// Itinerary is the ordered sequence of resolved points a trip is computed
// over: start first, then stops in caller-chosen order. CloseLoop requests
// an extra segment from the last point back to the first.
type Itinerary struct {
	Points    []Point `json:"points"`
	CloseLoop bool    `json:"close_loop,omitempty"`
}

// Route is one driving route reported by the routing service. Geometry,
// when present, is a GeoJSON LineString coordinate list in [lon, lat] order.
type Route struct {
	Km       float64
	Geometry [][]float64
}

// Segment is one leg of a computed trip. Unrouted marks legs the routing
// service could not resolve; they keep their place in the list with zero
// distance so downstream totals stay index-aligned with the itinerary.
type Segment struct {
	From     Point       `json:"from"`
	To       Point       `json:"to"`
	KmOneWay float64     `json:"km_oneway"`
	Geometry [][]float64 `json:"geometry,omitempty"`
	Unrouted bool        `json:"unrouted,omitempty"`
}
