package geo

import "strings"

// displayLabel builds the human-readable "street, number, neighborhood -
// city" label shown back to the visitor. Structured fields from the geocoder
// are inconsistently populated for informal and rural addresses, so when the
// composed label is too short or has no street the raw display name is used
// instead (first two comma segments, or everything if there are fewer).
func displayLabel(r nominatimResult) string {
	addr := r.Address

	suburb := addr.Suburb
	if suburb == "" {
		suburb = addr.Neighbourhood
	}
	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Municipality
	}

	var parts []string
	for _, p := range []string{addr.Road, addr.HouseNumber, suburb} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	label := strings.Join(parts, ", ")
	if city != "" {
		label += " - " + city
	}

	if len([]rune(label)) < 5 || addr.Road == "" {
		return rawLabel(r.DisplayName)
	}
	return label
}

// rawLabel keeps the street and neighborhood/city segments of the raw
// geocoder display name.
func rawLabel(displayName string) string {
	segs := strings.Split(displayName, ",")
	if len(segs) >= 2 {
		return strings.TrimSpace(segs[0]) + ", " + strings.TrimSpace(segs[1])
	}
	return strings.TrimSpace(displayName)
}
