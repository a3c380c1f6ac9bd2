package movie

import (
	"fmt"
	"math"
	"strconv"
)

// MaxScore is the top of the rating scale.
const MaxScore = 10

// DisplayRating renders the rating a viewer should see. A user rating wins
// over the catalog vote average.
func DisplayRating(m Movie) string {
	switch {
	case m.Rating != nil:
		return fmt.Sprintf("%d/%d", *m.Rating, MaxScore)
	case m.VoteAverage != nil:
		return strconv.FormatFloat(*m.VoteAverage, 'f', 1, 64)
	default:
		return "n/a"
	}
}

// Score returns the 0-10 value that drives the star control.
func Score(m Movie) float64 {
	switch {
	case m.Rating != nil:
		return clampScore(float64(*m.Rating))
	case m.VoteAverage != nil:
		return clampScore(*m.VoteAverage)
	default:
		return 0
	}
}

// StarFill splits score across segments, returning the fill fraction of each
// segment in order. A score of 7.5 over ten segments yields seven full
// segments, one half segment, and two empty ones.
func StarFill(score float64, segments int) []float64 {
	if segments <= 0 {
		return nil
	}
	per := float64(MaxScore) / float64(segments)
	remaining := clampScore(score)
	fills := make([]float64, segments)
	for i := range fills {
		switch {
		case remaining >= per:
			fills[i] = 1
		case remaining > 0:
			fills[i] = remaining / per
		}
		remaining -= per
	}
	return fills
}

// Stars renders fills as text, using half stars for partial segments of at
// least one half.
func Stars(fills []float64) string {
	out := make([]rune, 0, len(fills))
	for _, f := range fills {
		switch {
		case f >= 1:
			out = append(out, '★')
		case f >= 0.5:
			out = append(out, '⯪')
		default:
			out = append(out, '☆')
		}
	}
	return string(out)
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(MaxScore, v))
}
