package model

import "strings"

// Group represents one LifeGroup from the catalog.
type Group struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Weekday      string  `json:"weekday"`
	Mode         string  `json:"mode"`
	StartTime    string  `json:"start_time"`
	Leader       string  `json:"leader"`
	LeaderPhone  string  `json:"leader_phone"`
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	HasCoords    bool    `json:"has_coords"`
}

// IsOnline reports whether the group meets remotely. The catalog mode column
// is free text, so detection is a case-insensitive substring match.
func (g Group) IsOnline() bool {
	return strings.Contains(strings.ToLower(g.Mode), "online")
}

// Filters holds the visitor's selected filter values. A group passes only if
// its category, weekday and mode are all members of the corresponding set.
// An empty set matches nothing.
type Filters struct {
	Categories []string
	Weekdays   []string
	Modes      []string
}

func (f Filters) Match(g Group) bool {
	return contains(f.Categories, g.Category) &&
		contains(f.Weekdays, g.Weekday) &&
		contains(f.Modes, g.Mode)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// VisitorQuery is one search submission. It lives for the session and is
// replaced wholesale on the next submission, never persisted.
type VisitorQuery struct {
	Name    string
	Phone   string
	Address string
	Filters Filters
}

// ResolvedLocation is the geocoded visitor address.
type ResolvedLocation struct {
	Lat   float64
	Lng   float64
	Label string
}

// RankedGroup is an in-person group annotated with its distance from the
// visitor. Online groups are never ranked and never carry a distance.
type RankedGroup struct {
	Group
	DistanceKm float64 `json:"distance_km"`
}

// SignupRequest is the transient record sent to the notification channels
// when a visitor asks to join a group.
type SignupRequest struct {
	VisitorName  string
	VisitorPhone string
	GroupName    string
	LeaderName   string
	LeaderPhone  string
	Mode         string
}
