package services

import "cruisebooking/internal/domain/models"

// ResizeRoster returns the additional-passenger list sized to exactly
// adults+children-1 entries. Entries surviving the resize keep their values
// and order; growth appends blanks whose IsChild flag follows the roster
// position rule (entry i is passenger i+2, a child iff i >= adults-1);
// shrinkage truncates from the end. Called on every adults/children change
// so the invariant never depends on effect ordering.
func ResizeRoster(roster []models.Passenger, adults, children int) []models.Passenger {
	target := adults + children - 1
	if target < 0 {
		target = 0
	}

	out := make([]models.Passenger, 0, target)
	if len(roster) > target {
		out = append(out, roster[:target]...)
		return out
	}

	out = append(out, roster...)
	for i := len(roster); i < target; i++ {
		out = append(out, models.Passenger{IsChild: i >= adults-1})
	}
	return out
}
