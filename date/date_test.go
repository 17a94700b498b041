package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, time.February, 30), New(2025, time.March, 2); got != want {
		t.Errorf("New(2025, 2, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	today := Today()
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "2024-03-15T13:45:00Z", want: New(2024, time.March, 15)},
		{in: "0d", want: today},
		{in: "-3d", want: today.Add(-3)},
		{in: "+1w", want: today.Add(7)},
		{in: "-1y", want: New(today.Year()-1, today.Month(), today.Day())},
		{in: "yesterday", wantErr: true},
		{in: "2025/07/01", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, 1, 1), New(2024, 1, 2)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare(%v, %v) is not an order", a, b)
	}
	if !a.Before(b) || !b.After(a) {
		t.Errorf("Before/After disagree with Compare")
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, time.January, 9)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2025-01-09"` {
		t.Errorf("Marshal() = %s, want %q", b, "2025-01-09")
	}
	var got Date
	if err := json.Unmarshal([]byte(`"2025-1-9"`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}
	if err := json.Unmarshal([]byte(`"-1d"`), &got); err == nil {
		t.Errorf("Unmarshal(-1d) expected an error")
	}
}
