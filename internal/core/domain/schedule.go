package domain

import (
	"fmt"
	"time"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
)

// NextOccurrence returns the next scheduled date after d for the given
// frequency. The input is anchored to noon UTC before any calendar
// arithmetic.
//
// Biweekly deliberately means +15 days, not +14: the cadence models a
// twice-a-month pay cycle rather than every-other-week.
//
// Monthly uses native calendar rollover with no day-of-month clamping, so
// Jan 31 + 1 month lands on Mar 3 in non-leap years.
//
// An unrecognized frequency returns the date unchanged together with a
// validation error; callers must not treat the returned date as advanced.
func NextOccurrence(d time.Time, f Frequency) (time.Time, error) {
	d = dateutil.AtNoon(d)
	switch f {
	case Weekly:
		return d.AddDate(0, 0, 7), nil
	case Biweekly:
		return d.AddDate(0, 0, 15), nil
	case Monthly:
		return d.AddDate(0, 1, 0), nil
	case Yearly:
		return d.AddDate(1, 0, 0), nil
	default:
		return d, fmt.Errorf("%w: unrecognized frequency %q", apperrors.ErrValidation, f)
	}
}
