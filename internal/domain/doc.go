// Package domain models the core types of the mileage-sheet engine:
// free-text address queries, the geocoding candidates they resolve to, and
// the travel segments computed between resolved points.
//
// # Coordinates
//
// All coordinates are WGS-84 decimal degrees, latitude in [-90, 90] and
// longitude in [-180, 180]. Route geometry follows the GeoJSON convention
// of [longitude, latitude] pairs, which is the order the routing service
// reports and the order map renderers consume.
//
// # Cache key format
//
// Resolved candidate lists are cached under "<query>|<limit>" keys, where
// the query is whitespace-trimmed. The limit is part of the key because the
// same query with a larger limit is a different upstream request.
//
// # Rounding
//
// Segment distances are rounded half-up at one decimal via [KmRound].
// Mileage sheets produced by earlier versions of this tool round 12.35 km to
// 12.4, so round-half-to-even semantics would silently change totals at the
// .05 boundary.
package domain
