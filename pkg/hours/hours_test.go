package hours

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:00", want: 9},
		{name: "afternoon", input: "14:00", want: 14},
		{name: "last start hour", input: "23:00", want: 23},
		{name: "end of day bound", input: "24:00", want: 24},
		{name: "missing zero padding", input: "9:00", wantErr: true},
		{name: "sub-hour precision", input: "09:30", wantErr: true},
		{name: "past end of day", input: "25:00", wantErr: true},
		{name: "negative", input: "-1:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "trailing text", input: "09:00pm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "00:00"},
		{9, "09:00"},
		{14, "14:00"},
		{23, "23:00"},
		{24, "24:00"},
	}

	for _, tt := range tests {
		if got := Format(tt.hour); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestFormatAll(t *testing.T) {
	got := FormatAll([]int{9, 10, 11})
	want := []string{"09:00", "10:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FormatAll = %v, want %v", got, want)
	}

	if got := FormatAll(nil); len(got) != 0 {
		t.Errorf("FormatAll(nil) = %v, want empty", got)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for h := 0; h <= PerDay; h++ {
		got, err := Parse(Format(h))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) unexpected error: %v", h, err)
		}
		if got != h {
			t.Errorf("Parse(Format(%d)) = %d", h, got)
		}
	}
}
