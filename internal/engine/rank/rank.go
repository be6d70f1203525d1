// Package rank filters the catalog against the visitor's selections and
// orders in-person groups by distance from the resolved visitor coordinate.
package rank

import (
	"sort"

	"github.com/pazsp/lifefinder/internal/engine/geo"
	"github.com/pazsp/lifefinder/internal/model"
)

// FilterAndRank is a pure function of catalog, filters and origin. It keeps
// groups whose category, weekday and mode are all members of the filter
// sets, splits online from in-person, and ranks the in-person groups by
// great-circle distance ascending. Ties keep catalog order (stable sort).
// Online groups come back unordered and carry no distance.
//
// An empty catalog or a filter set that matches nothing yields empty
// outputs, never an error.
func FilterAndRank(groups []model.Group, filters model.Filters, origin model.ResolvedLocation) (inPerson []model.RankedGroup, online []model.Group) {
	for _, g := range groups {
		if !filters.Match(g) {
			continue
		}
		if g.IsOnline() {
			online = append(online, g)
			continue
		}
		inPerson = append(inPerson, model.RankedGroup{
			Group:      g,
			DistanceKm: geo.DistanceKm(origin.Lat, origin.Lng, g.Lat, g.Lng),
		})
	}

	sort.SliceStable(inPerson, func(i, j int) bool {
		return inPerson[i].DistanceKm < inPerson[j].DistanceKm
	})

	return inPerson, online
}
