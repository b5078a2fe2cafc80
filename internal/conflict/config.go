package conflict

import "github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"

// Config is the small capability record the detector needs, passed in by
// the session orchestrator rather than pulled from a global container
// (spec §9: "compose via small capability records... rather than
// inversion-of-control containers").
type Config struct {
	MaxPeriodsPerDay int
	MinPrepMinutes   int
	LunchStart       calendar.Clock
	LunchEnd         calendar.Clock
	TravelThreshold  int
}
