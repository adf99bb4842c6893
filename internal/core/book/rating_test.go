// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookcatalog/internal/core/book"
	"github.com/taibuivan/bookcatalog/pkg/pointer"
)

func summaryOf(distribution book.Distribution) book.RatingSummary {
	total := 0
	for _, count := range distribution {
		total += count
	}
	return book.RatingSummary{TotalReviews: total, RatingDistribution: distribution}.Apply(book.ActionUpdate, 1, nil)
}

/*
TestRatingSummary_Apply checks each action against hand-computed results.
*/
func TestRatingSummary_Apply(t *testing.T) {
	start := summaryOf(book.Distribution{1: 0, 2: 0, 3: 1, 4: 2, 5: 1})
	assert.Equal(t, 4.0, start.AverageRating)

	tests := []struct {
		name     string
		action   book.Action
		rating   int
		previous *int
		total    int
		average  float64
		bucket   map[int]int
	}{
		{"add", book.ActionAdd, 5, nil, 5, 4.2, map[int]int{5: 2}},
		{"update_moves_review", book.ActionUpdate, 1, pointer.To(4), 4, 3.3, map[int]int{4: 1, 1: 1}},
		{"update_same_rating", book.ActionUpdate, 4, pointer.To(4), 4, 4.0, map[int]int{4: 2}},
		{"update_unknown_review", book.ActionUpdate, 2, nil, 4, 4.0, map[int]int{2: 0}},
		{"update_from_empty_bucket", book.ActionUpdate, 5, pointer.To(2), 4, 4.0, map[int]int{2: 0, 5: 1}},
		{"remove", book.ActionRemove, 3, nil, 3, 4.3, map[int]int{3: 0}},
		{"remove_from_empty_bucket", book.ActionRemove, 1, nil, 4, 4.0, map[int]int{1: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := start.Apply(tt.action, tt.rating, tt.previous)

			assert.Equal(t, tt.total, next.TotalReviews)
			assert.Equal(t, tt.average, next.AverageRating)
			for stars, count := range tt.bucket {
				assert.Equal(t, count, next.RatingDistribution[stars], "bucket %d", stars)
			}
			assert.Equal(t, 1, start.RatingDistribution[3], "receiver is not modified")
		})
	}
}

/*
TestRatingSummary_RemoveLast returns to an average of zero.
*/
func TestRatingSummary_RemoveLast(t *testing.T) {
	summary := book.RatingSummary{RatingDistribution: book.NewDistribution()}.Apply(book.ActionAdd, 3, nil)
	assert.Equal(t, 3.0, summary.AverageRating)

	summary = summary.Apply(book.ActionRemove, 3, nil)
	assert.Equal(t, 0, summary.TotalReviews)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Len(t, summary.RatingDistribution, 5)
}

/*
TestRatingSummary_Invariants replays random event sequences and checks that
the buckets always sum to the total and the average matches the buckets.
*/
func TestRatingSummary_Invariants(t *testing.T) {
	random := rand.New(rand.NewPCG(7, 11))
	actions := []book.Action{book.ActionAdd, book.ActionAdd, book.ActionUpdate, book.ActionRemove}

	summary := book.RatingSummary{RatingDistribution: book.NewDistribution()}
	for i := 0; i < 2000; i++ {
		action := actions[random.IntN(len(actions))]
		rating := random.IntN(5) + 1

		var previous *int
		if action == book.ActionUpdate && random.IntN(4) > 0 {
			previous = pointer.To(random.IntN(5) + 1)
		}

		summary = summary.Apply(action, rating, previous)

		sum, weighted := 0, 0
		for stars, count := range summary.RatingDistribution {
			assert.GreaterOrEqual(t, count, 0)
			sum += count
			weighted += stars * count
		}
		assert.Equal(t, summary.TotalReviews, sum)

		expected := 0.0
		if sum > 0 {
			expected = math.Round(float64(weighted)/float64(sum)*10) / 10
		}
		assert.Equal(t, expected, summary.AverageRating)
	}
}
