package domain

import (
	"fmt"
	"time"
)

// Calendar is the CF calendar of every encoded time axis.
const Calendar = "proleptic_gregorian"

// Encode converts the time axis to CF numeric offsets from its first
// timestamp. Sub-daily axes count minutes, all others count days. An empty
// axis encodes to no values and "days since 1970-01-01".
func (a TimeAxis) Encode() (values []float64, units string) {
	if len(a.Values) == 0 {
		return nil, "days since 1970-01-01"
	}

	ref := a.Values[0]
	step, name, layout := 24*time.Hour, "days", "2006-01-02"
	if subDaily(a.Values) {
		step, name, layout = time.Minute, "minutes", "2006-01-02 15:04:05"
	}

	values = make([]float64, len(a.Values))
	for i, t := range a.Values {
		values[i] = float64(t.Sub(ref)) / float64(step)
	}
	return values, fmt.Sprintf("%s since %s", name, ref.Format(layout))
}

func subDaily(ts []time.Time) bool {
	for _, t := range ts {
		if t.Hour() != 0 || t.Minute() != 0 {
			return true
		}
	}
	return false
}
