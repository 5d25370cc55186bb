// Package availability computes bookable hour windows from a room's active
// schedule. It is pure: no storage, no locking. Callers own staleness, since
// whatever was computed here is re-checked under the room lock at commit time.
package availability

import (
	"huddle/pkg/hours"
	"huddle/pkg/model"
)

// MaxSlotHours caps a single reservation at two hours.
const MaxSlotHours = 2

// HourBooked reports whether any record in the schedule covers hour h.
// Canceled records never block an hour.
func HourBooked(schedule []*model.Booking, h int) bool {
	for _, b := range schedule {
		if b.Active() && b.Covers(h) {
			return true
		}
	}
	return false
}

// FreeStartHours returns every hour in [0,24) not covered by an active
// record, in ascending order. An empty result means the room is fully booked
// for the day.
func FreeStartHours(schedule []*model.Booking) []int {
	free := make([]int, 0, hours.PerDay)
	for h := 0; h < hours.PerDay; h++ {
		if !HourBooked(schedule, h) {
			free = append(free, h)
		}
	}
	return free
}

// CandidateEndHours returns the legal end hours for a reservation starting at
// startHour, walking forward one hour at a time and stopping at the first
// booked hour, at hour 24, or at the two-hour cap. startHour must come from
// FreeStartHours; an empty result means no valid end time exists and the
// request cannot be submitted.
func CandidateEndHours(schedule []*model.Booking, startHour int) []int {
	ends := make([]int, 0, MaxSlotHours)
	for h := startHour + 1; h <= startHour+MaxSlotHours && h < hours.PerDay; h++ {
		if HourBooked(schedule, h) {
			break
		}
		ends = append(ends, h)
	}
	return ends
}
