package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purchases map[uint]bool

func (p purchases) HasPurchased(_ context.Context, userID, _ uint) (bool, error) {
	return p[userID], nil
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup(t)
	p, err := svc.AddProduct(ctx, 1, shirtRequest())
	require.NoError(t, err)

	reviews := NewReviewService(memoryReviews{repo}, repo, purchases{10: true, 11: true})

	t.Run("buyer can review once", func(t *testing.T) {
		r, err := reviews.AddReview(ctx, 10, "ana", &AddReviewRequest{ProductID: p.ID, ReviewMessage: " fits well ", ReviewValue: 4})
		require.NoError(t, err)
		assert.Equal(t, "fits well", r.Message)

		_, err = reviews.AddReview(ctx, 10, "ana", &AddReviewRequest{ProductID: p.ID, ReviewMessage: "again", ReviewValue: 1})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("average is recomputed", func(t *testing.T) {
		_, err := reviews.AddReview(ctx, 11, "ben", &AddReviewRequest{ProductID: p.ID, ReviewMessage: "ok", ReviewValue: 5})
		require.NoError(t, err)

		stored, _ := repo.FindByID(ctx, p.ID)
		assert.Equal(t, 4.5, stored.AverageReview)

		list, err := reviews.ListReviews(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("non buyer rejected", func(t *testing.T) {
		_, err := reviews.AddReview(ctx, 12, "cy", &AddReviewRequest{ProductID: p.ID, ReviewMessage: "nice", ReviewValue: 5})
		assert.ErrorIs(t, err, ErrNotPurchased)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := reviews.AddReview(ctx, 10, "ana", &AddReviewRequest{ProductID: 999, ReviewMessage: "nice", ReviewValue: 5})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
