package typestrike

import (
	"fmt"
	"sort"
)

// WeakThreshold is the per-letter accuracy below which a letter is weak.
const WeakThreshold = 85.0

// LetterStat is the outcome of one character over a session.
type LetterStat struct {
	Char     rune
	Hits     int
	Errors   int
	Accuracy float64
}

// Report summarizes a finished session.
type Report struct {
	LevelIndex  int
	LevelID     string
	LevelName   string
	Outcome     Phase // PhaseLevelComplete or PhaseGameOver
	Score       int
	Accuracy    int // Whole percent, truncated
	WPM         int
	Duration    float64 // Seconds played
	MaxCombo    int
	Correct     int
	Total       int
	Typed       map[rune]int
	Errors      map[rune]int
	WeakLetters []LetterStat
	Feedback    string
}

// Completed reports whether the level was cleared.
func (r Report) Completed() bool {
	return r.Outcome == PhaseLevelComplete
}

func (g *Game) buildReport(outcome Phase) Report {
	r := Report{
		LevelIndex: g.levelIndex,
		LevelID:    g.level.ID,
		LevelName:  g.level.Name,
		Outcome:    outcome,
		Score:      g.score,
		Accuracy:   int(g.Accuracy()),
		WPM:        g.WPM(),
		Duration:   g.elapsed,
		MaxCombo:   g.maxCombo,
		Correct:    g.correct,
		Total:      g.total,
		Typed:      g.Typed(),
		Errors:     g.Errors(),
	}
	r.WeakLetters = WeakLetters(r.Typed, r.Errors)
	r.Feedback = Feedback(r)
	return r
}

// WeakLetters returns the characters whose accuracy is below
// WeakThreshold, worst first, ties broken by character.
func WeakLetters(typed, errs map[rune]int) []LetterStat {
	chars := make(map[rune]struct{}, len(typed)+len(errs))
	for r := range typed {
		chars[r] = struct{}{}
	}
	for r := range errs {
		chars[r] = struct{}{}
	}

	var weak []LetterStat
	for r := range chars {
		hits, misses := typed[r], errs[r]
		if hits+misses == 0 {
			continue
		}
		acc := 100 * float64(hits) / float64(hits+misses)
		if acc < WeakThreshold {
			weak = append(weak, LetterStat{Char: r, Hits: hits, Errors: misses, Accuracy: acc})
		}
	}

	sort.Slice(weak, func(i, j int) bool {
		if weak[i].Accuracy != weak[j].Accuracy {
			return weak[i].Accuracy < weak[j].Accuracy
		}
		return weak[i].Char < weak[j].Char
	})
	return weak
}

// Feedback returns the coach line for a report, picked by accuracy band.
func Feedback(r Report) string {
	switch {
	case r.Accuracy >= 95:
		return fmt.Sprintf("Great session! You typed %d letters at %d WPM. Keep practicing those home row keys!", r.Total, r.WPM)
	case r.Accuracy >= 90:
		return fmt.Sprintf("Nice work! Your accuracy of %d%% is solid. Focus on building consistent speed next.", r.Accuracy)
	case r.Accuracy >= 80:
		return fmt.Sprintf("You're improving! %d WPM is progress. Remember to keep your fingers on the home row - F and J!", r.WPM)
	default:
		return fmt.Sprintf("Excellent effort! With %d%% accuracy, you're building good habits. Speed will come naturally.", r.Accuracy)
	}
}
