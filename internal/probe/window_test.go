package probe

import (
	"errors"
	"testing"
)

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    WindowID
		wantErr bool
	}{
		{"0x1a00003", 0x1a00003, false},
		{"27262979", 27262979, false},
		{" 0X10 ", 16, false},
		{"", 0, true},
		{"window", 0, true},
		{"0x1ffffffff", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseWindowID(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseWindowID(%q) error = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWindowID(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWindowID(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestQueryError(t *testing.T) {
	cause := errors.New("BadWindow")
	err := error(&QueryError{Op: "GetGeometry", Window: 0x2a, Err: cause})

	if got, want := err.Error(), "GetGeometry on window 0x2a (default display): BadWindow"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrQueryFailed) {
		t.Fatal("errors.Is(err, ErrQueryFailed) = false")
	}
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is(err, cause) = false")
	}
}

func TestMapState_String(t *testing.T) {
	if Viewable.String() != "viewable" || MapState(9).String() != "mapstate(9)" {
		t.Fatalf("unexpected MapState strings: %s, %s", Viewable, MapState(9))
	}
}
