package game

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		submission string
		title      string
		want       bool
	}{
		{"exact", "月亮", "月亮", true},
		{"exact with spaces and case", " Moon ", "moon", true},
		{"title inside submission", "我好喜欢月亮啊", "月亮", true},
		{"submission inside title", "里香", "七里香", true},
		{"single char too short", "月", "月亮", false},
		{"wrong answer", "星星", "月亮", false},
		{"empty submission", "", "月亮", false},
		{"internal whitespace stripped", "七 里 香", "七里香", true},
		{"unrelated long text", "今天天气真好啊", "月亮", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.submission, tt.title); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.submission, tt.title, got, tt.want)
			}
		})
	}
}
