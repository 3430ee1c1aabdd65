package game

import "testing"

func TestHint(t *testing.T) {
	tests := []struct {
		title string
		level int
		want  string
	}{
		{"七里香", 0, "＊＊＊"},
		{"七里香", 1, "七＊＊"},
		{"七里香", 2, "七里＊"},
		{"七里香", 3, "七里香"},
		{"七里香", 5, "七里香"},
		{"七里香", -1, "＊＊＊"},
		{"", 2, ""},
	}

	for _, tt := range tests {
		if got := Hint(tt.title, tt.level); got != tt.want {
			t.Errorf("Hint(%q, %d) = %q, want %q", tt.title, tt.level, got, tt.want)
		}
	}
}
