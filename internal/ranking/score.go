package ranking

import (
	"math"
	"time"
)

// Weights applied to each engagement signal before damping.
const (
	viewWeight     = 0.1
	likeWeight     = 1.0
	replyWeight    = 2.0
	dislikeWeight  = 1.0
	decayHalfHours = 48.0
)

// Engagement is the input to TrendingScore.
type Engagement struct {
	Views     int64
	Likes     int
	Dislikes  int
	Replies   int
	CreatedAt time.Time
}

// TrendingScore rates how "hot" an item is as of now. Engagement is damped
// with log10 and a linear age penalty of one point per 48 hours is
// subtracted. The result increases with views, likes and replies and
// decreases with dislikes and age. A fresh item with no engagement scores 0.
func TrendingScore(e Engagement, now time.Time) float64 {
	raw := 1 +
		viewWeight*float64(e.Views) +
		likeWeight*float64(e.Likes) +
		replyWeight*float64(e.Replies) -
		dislikeWeight*float64(e.Dislikes)

	damped := math.Log10(math.Max(math.Abs(raw), 1))
	if raw < 0 {
		damped = -damped
	}

	age := now.Sub(e.CreatedAt).Hours()
	if age < 0 {
		age = 0
	}
	return damped - age/decayHalfHours
}
