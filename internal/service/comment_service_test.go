package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/events"
)

func TestCommentAdd(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	booker := fx.seedUser(t, "Boris", "boris@example.com")
	item := fx.seedItem(t, owner.ID, "Drill", true)
	fx.seedBooking(t, item.ID, booker.ID, domain.BookingStatusApproved,
		time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))

	info, err := fx.comments.Add(ctx, booker.ID, item.ID, "worked great")
	require.NoError(t, err)
	assert.NotZero(t, info.ID)
	assert.Equal(t, "worked great", info.Text)
	assert.Equal(t, "Boris", info.AuthorName)
	assert.False(t, info.Created.IsZero())

	require.Len(t, *fx.published, 1)
	assert.Equal(t, events.EventCommentAdded, (*fx.published)[0].Type)
}

func TestCommentAddRequiresFinishedApprovedBooking(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	booker := fx.seedUser(t, "Boris", "boris@example.com")
	item := fx.seedItem(t, owner.ID, "Drill", true)

	// no booking at all
	_, err := fx.comments.Add(ctx, booker.ID, item.ID, "never rented")
	requireDomainError(t, err, "VALIDATION_FAILED")

	// approved but still running
	fx.seedBooking(t, item.ID, booker.ID, domain.BookingStatusApproved,
		time.Now().Add(-1*time.Hour), time.Now().Add(1*time.Hour))
	_, err = fx.comments.Add(ctx, booker.ID, item.ID, "still renting")
	requireDomainError(t, err, "VALIDATION_FAILED")

	// finished but rejected
	fx.seedBooking(t, item.ID, booker.ID, domain.BookingStatusRejected,
		time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))
	_, err = fx.comments.Add(ctx, booker.ID, item.ID, "was rejected")
	requireDomainError(t, err, "VALIDATION_FAILED")
}

func TestCommentAddValidation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	booker := fx.seedUser(t, "Boris", "boris@example.com")
	item := fx.seedItem(t, owner.ID, "Drill", true)
	fx.seedBooking(t, item.ID, booker.ID, domain.BookingStatusApproved,
		time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))

	_, err := fx.comments.Add(ctx, 404, item.ID, "text")
	requireDomainError(t, err, "NOT_FOUND")

	_, err = fx.comments.Add(ctx, booker.ID, 9999, "text")
	requireDomainError(t, err, "NOT_FOUND")

	_, err = fx.comments.Add(ctx, booker.ID, item.ID, "   ")
	requireDomainError(t, err, "VALIDATION_FAILED")
}
