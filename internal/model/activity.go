package model

import "time"

// ActivityRecord is a single activity as reported by the provider.
// Immutable once fetched; the aggregation core never mutates it.
type ActivityRecord struct {
	ID         int64     // provider-unique external identifier
	Type       string    // e.g. "Run", "Ride"
	StartLocal time.Time // athlete-local start time, offset as reported
	Distance   float64   // meters
	MovingTime float64   // seconds
}

// AcceptedTypes is the fixed set of activity kinds that count toward the board.
var AcceptedTypes = map[string]struct{}{
	"Run": {}, "Trail Run": {}, "Walk": {}, "Hike": {}, "Virtual Run": {},
	"Ride": {}, "Mountain Bike Ride": {}, "Gravel Ride": {}, "E-Bike Ride": {},
	"E-Mountain Bike Ride": {}, "Velomobile": {}, "Virtual Ride": {},
	"Canoe": {}, "Kayak": {}, "Kitesurf": {}, "Rowing": {}, "Stand Up Paddling": {},
	"Surf": {}, "Windsurf": {}, "Sail": {},
	"Ice Skate": {}, "Alpine Ski": {}, "Backcountry Ski": {}, "Nordic Ski": {},
	"Snowboard": {}, "Snowshoe": {},
	"Handcycle": {}, "Inline Skate": {}, "Rock Climb": {}, "Roller Ski": {},
	"Golf": {}, "Skateboard": {}, "Football (Soccer)": {},
	"Wheelchair": {}, "Badminton": {}, "Tennis": {}, "Pickleball": {},
	"Crossfit": {}, "Elliptical": {}, "Stair Stepper": {},
	"Weight Training": {}, "Yoga": {}, "Workout": {}, "HIIT": {}, "Pilates": {},
	"Table Tennis": {}, "Squash": {}, "Racquetball": {}, "Virtual Rowing": {},
}

// Challenge classification: distance types accumulate kilometers, time types
// accumulate minutes only. Fixed lookup, never inferred from the record.
var (
	DistanceTypes = []string{"Run", "Ride", "Swim"}
	TimeTypes     = []string{"Workout"}
)

// ChallengeTypes returns the full ordered list of challenge activity types.
func ChallengeTypes() []string {
	out := make([]string, 0, len(DistanceTypes)+len(TimeTypes))
	out = append(out, DistanceTypes...)
	out = append(out, TimeTypes...)
	return out
}

// IsDistanceType reports whether a challenge type is distance-classified.
func IsDistanceType(actType string) bool {
	for _, t := range DistanceTypes {
		if t == actType {
			return true
		}
	}
	return false
}
