package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01.06.2024", "2023-01-32", "", "today"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidChatID(t *testing.T) {
	if !IsValidChatID(1027958463) {
		t.Error("IsValidChatID(1027958463) = false, want true")
	}
	for _, id := range []int64{0, -5} {
		if IsValidChatID(id) {
			t.Errorf("IsValidChatID(%d) = true, want false", id)
		}
	}
}

func TestParseDaySchedule(t *testing.T) {
	cases := []struct {
		input      string
		start, end string
		ok         bool
	}{
		{"09:00-18:00", "09:00", "18:00", true},
		{" 10:30-19:15 ", "10:30", "19:15", true},
		{"0", "", "", true},
		{"24:00-01:00", "", "", false},
		{"09:00", "", "", false},
		{"9:00-18:00", "", "", false},
		{"", "", "", false},
	}
	for _, c := range cases {
		start, end, ok := ParseDaySchedule(c.input)
		if start != c.start || end != c.end || ok != c.ok {
			t.Errorf("ParseDaySchedule(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.input, start, end, ok, c.start, c.end, c.ok)
		}
	}
}
