package game

// Hint renders the title with the first level characters revealed and
// the rest masked with full-width asterisks. Level 0 masks everything;
// levels beyond the title length reveal nothing further.
func Hint(title string, level int) string {
	runes := []rune(title)
	if level < 0 {
		level = 0
	}
	if level > len(runes) {
		level = len(runes)
	}

	masked := make([]rune, len(runes))
	for i := range runes {
		if i < level {
			masked[i] = runes[i]
		} else {
			masked[i] = '＊'
		}
	}
	return string(masked)
}
