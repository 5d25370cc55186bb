package model

import "testing"

func TestBookingOverlaps(t *testing.T) {
	b := &Booking{StartHour: 9, EndHour: 11}

	tests := []struct {
		name  string
		start int
		end   int
		want  bool
	}{
		{"identical window", 9, 11, true},
		{"contained window", 9, 10, true},
		{"straddles the start", 8, 10, true},
		{"straddles the end", 10, 12, true},
		{"ends where it starts", 7, 9, false},
		{"starts where it ends", 11, 13, false},
		{"disjoint before", 5, 7, false},
		{"disjoint after", 13, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestBookingCovers(t *testing.T) {
	b := &Booking{StartHour: 9, EndHour: 11}

	for h, want := range map[int]bool{8: false, 9: true, 10: true, 11: false} {
		if got := b.Covers(h); got != want {
			t.Errorf("Covers(%d) = %v, want %v", h, got, want)
		}
	}
}

func TestBookingActive(t *testing.T) {
	if !(&Booking{Status: StatusBooked}).Active() {
		t.Error("booked record reported inactive")
	}
	if (&Booking{Status: StatusCanceled}).Active() {
		t.Error("canceled record reported active")
	}
}
