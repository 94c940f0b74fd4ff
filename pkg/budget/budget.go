package budget

import "time"

// Budget is a year+version container for planned technology spend. At most
// one budget is active at a time; the active one is what dashboards and
// reports open by default.
type Budget struct {
	ID        int
	Year      int
	Version   int
	IsActive  bool
	CreatedAt time.Time
}
