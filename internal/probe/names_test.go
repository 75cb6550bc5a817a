package probe

import "testing"

func TestChooseName(t *testing.T) {
	tests := []struct {
		first, second string
		want          string
	}{
		{"firefox", "firefox", "firefox"},
		{"firefox", "ff", "firefox"},
		{"ff", "firefox", "firefox"},
		{"", "xterm", "xterm"},
		{"xterm", "", "xterm"},
		{"", "", ""},
		{"abc", "xyz", "xyz"}, // equal length, unequal: second wins
	}
	for _, tt := range tests {
		if got := ChooseName(tt.first, tt.second); got != tt.want {
			t.Errorf("ChooseName(%q, %q) = %q, want %q", tt.first, tt.second, got, tt.want)
		}
	}
}
