package tetris

// LinePoints is the base score for clearing 0..4 lines with one piece. The
// award is multiplied by the level the lines were cleared on.
var LinePoints = [5]int{0, 40, 100, 300, 1200}

// LinesPerLevel is how many cleared lines it takes to go up one level.
const LinesPerLevel = 10

// LineScore returns the points for clearing lines rows at once on level.
func LineScore(lines, level int) int {
	if lines < 0 || lines >= len(LinePoints) {
		return 0
	}
	return LinePoints[lines] * level
}

// applyClear folds a clear of n lines into stats and reports the score delta
// and whether the level went up.
func applyClear(stats *Stats, n int) (delta int, levelUp bool) {
	delta = LineScore(n, stats.Level)
	stats.Score += delta

	prev := stats.LinesCleared
	stats.LinesCleared += n
	if gained := stats.LinesCleared/LinesPerLevel - prev/LinesPerLevel; gained > 0 {
		stats.Level += gained
		levelUp = true
	}
	return delta, levelUp
}
