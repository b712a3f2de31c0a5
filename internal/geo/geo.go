// Package geo ranks nearby search results. Containment within the search
// radius is decided by the store with a geodesic predicate; the planar
// approximation here only orders points that already passed it.
package geo

import (
	"math"
	"sort"

	"github.com/hongminglow/packpoint-be/internal/models"
)

// NearbyRadiusMeters is the fixed search radius, about ten miles.
const NearbyRadiusMeters = 16093.0

// ApproxDistance is the Euclidean distance in raw degrees. It ignores
// meridian convergence and the antimeridian and is only meaningful for
// ranking candidates a few kilometers apart.
func ApproxDistance(a, b models.Location) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}

// SortByApprox orders points ascending by ApproxDistance from origin. The
// sort is stable so ties keep store order.
func SortByApprox(points []models.Point, origin models.Location) {
	sort.SliceStable(points, func(i, j int) bool {
		return ApproxDistance(points[i].Location, origin) < ApproxDistance(points[j].Location, origin)
	})
}
