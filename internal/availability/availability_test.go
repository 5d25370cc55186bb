package availability

import (
	"reflect"
	"testing"

	"huddle/pkg/model"
)

func booked(roomID string, start, end int) *model.Booking {
	return &model.Booking{
		RoomID:    roomID,
		BookedBy:  "alice",
		StartHour: start,
		EndHour:   end,
		Status:    model.StatusBooked,
	}
}

func canceled(roomID string, start, end int) *model.Booking {
	b := booked(roomID, start, end)
	b.Status = model.StatusCanceled
	return b
}

func TestFreeStartHours(t *testing.T) {
	tests := []struct {
		name     string
		schedule []*model.Booking
		want     []int
	}{
		{
			name:     "empty schedule frees every hour",
			schedule: nil,
			want:     allHours(),
		},
		{
			name:     "booked window excludes its covered hours",
			schedule: []*model.Booking{booked("room-a", 9, 11)},
			want:     hoursExcept(9, 10),
		},
		{
			name: "canceled records never block",
			schedule: []*model.Booking{
				canceled("room-a", 9, 11),
				booked("room-a", 14, 15),
			},
			want: hoursExcept(14),
		},
		{
			name: "adjacent windows share no hour",
			schedule: []*model.Booking{
				booked("room-a", 9, 11),
				booked("room-a", 11, 13),
			},
			want: hoursExcept(9, 10, 11, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeStartHours(tt.schedule)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FreeStartHours = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFreeStartHoursFullyBookedDay(t *testing.T) {
	var schedule []*model.Booking
	for h := 0; h < 24; h += 2 {
		schedule = append(schedule, booked("room-a", h, h+2))
	}

	if got := FreeStartHours(schedule); len(got) != 0 {
		t.Errorf("expected no free hours, got %v", got)
	}
}

func TestCandidateEndHours(t *testing.T) {
	nineToEleven := []*model.Booking{booked("room-a", 9, 11)}

	tests := []struct {
		name      string
		schedule  []*model.Booking
		startHour int
		want      []int
	}{
		{
			name:      "open day offers both end hours",
			schedule:  nil,
			startHour: 14,
			want:      []int{15, 16},
		},
		{
			name:      "stops before a booked hour",
			schedule:  nineToEleven,
			startHour: 7,
			want:      []int{8},
		},
		{
			name:      "immediate booked neighbor leaves no options",
			schedule:  nineToEleven,
			startHour: 8,
			want:      []int{},
		},
		{
			name:      "resumes right after a window ends",
			schedule:  nineToEleven,
			startHour: 11,
			want:      []int{12, 13},
		},
		{
			name:      "never offers an hour past the end of day",
			schedule:  nil,
			startHour: 22,
			want:      []int{23},
		},
		{
			name:      "last start hour has no legal end",
			schedule:  nil,
			startHour: 23,
			want:      []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CandidateEndHours(tt.schedule, tt.startHour)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CandidateEndHours(start=%d) = %v, want %v", tt.startHour, got, tt.want)
			}
		})
	}
}

func TestCandidateEndHoursCap(t *testing.T) {
	for start := 0; start < 22; start++ {
		got := CandidateEndHours(nil, start)
		if len(got) > MaxSlotHours {
			t.Fatalf("start %d offers %d end hours, cap is %d", start, len(got), MaxSlotHours)
		}
		for _, end := range got {
			if end >= 24 {
				t.Fatalf("start %d offers end hour %d", start, end)
			}
			if end-start > MaxSlotHours {
				t.Fatalf("start %d offers over-length end %d", start, end)
			}
		}
	}
}

func TestHourBooked(t *testing.T) {
	schedule := []*model.Booking{booked("room-a", 9, 11)}

	for h, want := range map[int]bool{8: false, 9: true, 10: true, 11: false} {
		if got := HourBooked(schedule, h); got != want {
			t.Errorf("HourBooked(%d) = %v, want %v", h, got, want)
		}
	}
}

func allHours() []int {
	hs := make([]int, 24)
	for i := range hs {
		hs[i] = i
	}
	return hs
}

func hoursExcept(excluded ...int) []int {
	skip := make(map[int]bool, len(excluded))
	for _, h := range excluded {
		skip[h] = true
	}
	hs := make([]int, 0, 24)
	for h := 0; h < 24; h++ {
		if !skip[h] {
			hs = append(hs, h)
		}
	}
	return hs
}
