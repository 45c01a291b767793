// Package scoring implements the pure matching and point rules for the
// guess-logo game. Nothing here touches storage or the clock.
package scoring

import (
	"math"
	"strings"
)

// MaxAttempts is the number of guesses a participant gets per logo.
const MaxAttempts = 5

var basePointsTable = [...]int{100, 75, 50, 25, 10}

// Normalize lowercases and trims a guess or candidate before comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EditDistance returns the edit distance between two strings, in runes.
// An adjacent transposition ("appel" -> "apple") counts as one edit, so
// the most common typo class still lands inside the closeness window.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	rows := make([][]int, len(ra)+1)
	for i := range rows {
		rows[i] = make([]int, len(rb)+1)
		rows[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		rows[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d := min(rows[i-1][j]+1, min(rows[i][j-1]+1, rows[i-1][j-1]+cost))
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d = min(d, rows[i-2][j-2]+1)
			}
			rows[i][j] = d
		}
	}
	return rows[len(ra)][len(rb)]
}

// ClosenessMatch reports whether a wrong guess deserves a "you're close"
// signal against any candidate. It never awards points.
//
// A guess is close when the normalized similarity lands in [0.7, 1.0), or
// when one string is a prefix of the other and the length difference is at
// most 30% of the longer string, rounded up.
func ClosenessMatch(guess string, candidates []string) bool {
	g := Normalize(guess)
	if g == "" {
		return false
	}
	for _, candidate := range candidates {
		c := Normalize(candidate)
		if c == "" || c == g {
			// identical strings are exact, not close
			continue
		}

		longer := len([]rune(g))
		if l := len([]rune(c)); l > longer {
			longer = l
		}
		distance := EditDistance(g, c)
		similarity := 1 - float64(distance)/float64(longer)
		if similarity >= 0.7 && similarity < 1.0 {
			return true
		}

		if strings.HasPrefix(c, g) || strings.HasPrefix(g, c) {
			diff := len([]rune(g)) - len([]rune(c))
			if diff < 0 {
				diff = -diff
			}
			if diff <= int(math.Ceil(0.3*float64(longer))) {
				return true
			}
		}
	}
	return false
}

// ExactMatch reports whether a guess counts as correct: case-insensitive
// equality with the company name or any alternate, or a prefix match in
// either direction, with no minimum guess length.
func ExactMatch(guess, companyName string, alternateNames []string) bool {
	g := Normalize(guess)
	if g == "" {
		return false
	}
	candidates := append([]string{companyName}, alternateNames...)
	for _, candidate := range candidates {
		c := Normalize(candidate)
		if c == "" {
			continue
		}
		if g == c || strings.HasPrefix(c, g) || strings.HasPrefix(g, c) {
			return true
		}
	}
	return false
}

// BasePoints returns the base score for the nth attempt, 1-based; attempts
// past the table earn the floor value.
func BasePoints(attemptNumber int) int {
	if attemptNumber < 1 {
		attemptNumber = 1
	}
	if attemptNumber > len(basePointsTable) {
		return basePointsTable[len(basePointsTable)-1]
	}
	return basePointsTable[attemptNumber-1]
}

// ComputePoints scores a correct guess.
//
//	base   from the attempt table
//	bonus  floor(timeRemaining/roundLength * 50)
//	minus  10 per hint used
//	plus   10% of the subtotal per consecutive prior round solved
//
// The result is floored at zero.
func ComputePoints(attemptNumber int, timeRemainingMs int64, timePerLogoSeconds, hintsUsed, streak int) int {
	base := BasePoints(attemptNumber)

	var timeBonus int
	if timePerLogoSeconds > 0 && timeRemainingMs > 0 {
		timeBonus = int(math.Floor(float64(timeRemainingMs) / float64(timePerLogoSeconds*1000) * 50))
	}

	hintPenalty := 0
	if hintsUsed > 0 {
		hintPenalty = hintsUsed * 10
	}

	subtotal := base + timeBonus - hintPenalty
	streakBonus := 0
	if streak > 0 {
		streakBonus = int(math.Floor(float64(subtotal) * float64(streak) * 0.1))
	}

	total := subtotal + streakBonus
	if total < 0 {
		return 0
	}
	return total
}

// Streak counts the unbroken run of rounds the participant solved,
// scanning backward from currentIndex-1. A gap (unsolved or never played)
// ends the run.
func Streak(solved map[int]bool, currentIndex int) int {
	streak := 0
	for i := currentIndex - 1; i >= 0 && solved[i]; i-- {
		streak++
	}
	return streak
}
