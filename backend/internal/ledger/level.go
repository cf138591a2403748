package ledger

import (
	"math"

	"github.com/kopdar-dev/kopdar/shared/domain"
)

// Level starts at 1 and grows with the square root of EXP.
func Level(exp int) int {
	return int(math.Floor(math.Sqrt(float64(max(0, exp))/10))) + 1
}

// LevelThreshold is the total EXP at which the given level is left behind.
func LevelThreshold(level int) int {
	return level * level * 10
}

func Progress(exp int) domain.LevelProgress {
	exp = max(0, exp)
	level := Level(exp)
	floor := LevelThreshold(level - 1)
	next := LevelThreshold(level)

	inLevel := exp - floor
	span := next - floor
	return domain.LevelProgress{
		Level:        level,
		ExpInLevel:   inLevel,
		ExpForLevel:  span,
		NextLevelExp: next,
		Percent:      float64(inLevel) / float64(span) * 100,
	}
}
