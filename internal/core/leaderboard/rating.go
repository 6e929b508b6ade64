package leaderboard

import "gopkg.in/guregu/null.v3"

// ratingSum collects severity ratings. Values are taken as stored: ratings
// outside 1-10 are averaged like any other.
type ratingSum struct {
	sum   int64
	count int64
}

func (r *ratingSum) add(rating null.Int) {
	if !rating.Valid {
		return
	}
	r.sum += rating.Int64
	r.count++
}

// average is the mean rounded half-up to one decimal place, or null when
// nothing was collected.
func (r *ratingSum) average() null.Float {
	if r.count == 0 {
		return null.Float{}
	}
	return null.FloatFrom(RoundedMean(r.sum, r.count))
}

// RoundedMean returns sum/count rounded half-up (towards positive infinity) to
// one decimal place. The rounding is carried out on integers so that means
// such as 7.25 are never pushed the wrong way by binary floating point.
func RoundedMean(sum, count int64) float64 {
	tenths := floorDiv(20*sum+count, 2*count)
	return float64(tenths) / 10
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
