// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "math"

// # Rating Events

// Action is the kind of change the review service reports.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionRemove Action = "remove"
)

// MinStars and MaxStars bound a rating.
const (
	MinStars = 1
	MaxStars = 5
)

// RatingInput is the body of a rating event.
type RatingInput struct {
	ReviewID string   `json:"reviewId"`
	Rating   *float64 `json:"rating"`
	Action   string   `json:"action"`
}

// # Summary

// Distribution maps a star value (1..5) to the number of reviews giving it.
type Distribution map[int]int

// NewDistribution returns a distribution with every bucket at zero.
func NewDistribution() Distribution {
	distribution := Distribution{}
	for stars := MinStars; stars <= MaxStars; stars++ {
		distribution[stars] = 0
	}
	return distribution
}

// RatingSummary is the rating state cached on a book.
type RatingSummary struct {
	AverageRating      float64      `json:"averageRating"`
	TotalReviews       int          `json:"totalReviews"`
	RatingDistribution Distribution `json:"ratingDistribution"`
}

/*
Apply returns the summary after one rating event.

Description: The receiver is not modified. Buckets never go below zero, and a
count only moves when its source bucket has something to give, so the sum of
the buckets always equals TotalReviews.

  - add: one more review in bucket rating.
  - update: previous is the review's earlier rating (nil when unknown); the
    review moves from that bucket to rating.
  - remove: one review fewer in bucket rating.
*/
func (summary RatingSummary) Apply(action Action, rating int, previous *int) RatingSummary {
	next := RatingSummary{
		TotalReviews:       summary.TotalReviews,
		RatingDistribution: NewDistribution(),
	}
	for stars, count := range summary.RatingDistribution {
		if stars >= MinStars && stars <= MaxStars {
			next.RatingDistribution[stars] = count
		}
	}

	switch action {
	case ActionAdd:
		next.TotalReviews++
		next.RatingDistribution[rating]++

	case ActionUpdate:
		if previous != nil && *previous != rating && next.RatingDistribution[*previous] > 0 {
			next.RatingDistribution[*previous]--
			next.RatingDistribution[rating]++
		}

	case ActionRemove:
		if next.TotalReviews > 0 && next.RatingDistribution[rating] > 0 {
			next.TotalReviews--
			next.RatingDistribution[rating]--
		}
	}

	next.AverageRating = average(next.RatingDistribution, next.TotalReviews)
	return next
}

// average is round(sum(stars*count)/total, 1), or 0 without reviews.
func average(distribution Distribution, total int) float64 {
	if total <= 0 {
		return 0
	}

	sum := 0
	for stars, count := range distribution {
		sum += stars * count
	}
	return math.Round(float64(sum)/float64(total)*10) / 10
}

// # Views

// RatedBook is the response of a rating event.
type RatedBook struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	RatingSummary
}

// RatingStats is the response of the rating statistics endpoint.
type RatingStats struct {
	BookID string `json:"bookId"`
	Title  string `json:"title"`
	RatingSummary
}
