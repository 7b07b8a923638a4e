package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/service"
)

func boolPtr(b bool) *bool { return &b }

func TestItemAdd(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")

	item, err := fx.items.Add(ctx, owner.ID, service.ItemCreateInput{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   boolPtr(true),
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, owner.ID, item.OwnerID)
	assert.True(t, item.Available)
	assert.Nil(t, item.RequestID)
}

func TestItemAddValidation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")

	tests := []struct {
		name  string
		input service.ItemCreateInput
	}{
		{name: "missing available", input: service.ItemCreateInput{Name: "Drill", Description: "d"}},
		{name: "missing name", input: service.ItemCreateInput{Description: "d", Available: boolPtr(true)}},
		{name: "missing description", input: service.ItemCreateInput{Name: "Drill", Available: boolPtr(true)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.items.Add(ctx, owner.ID, tc.input)
			requireDomainError(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestItemAddUnknownOwner(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.items.Add(context.Background(), 404, service.ItemCreateInput{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   boolPtr(true),
	})
	requireDomainError(t, err, "NOT_FOUND")
}

func TestItemAddForRequest(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	requestor := fx.seedUser(t, "Rita", "rita@example.com")

	request, err := fx.requests.Create(ctx, requestor.ID, "need a drill")
	require.NoError(t, err)

	item, err := fx.items.Add(ctx, owner.ID, service.ItemCreateInput{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   boolPtr(true),
		RequestID:   &request.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, item.RequestID)
	assert.Equal(t, request.ID, *item.RequestID)

	_, err = fx.items.Add(ctx, owner.ID, service.ItemCreateInput{
		Name:        "Other",
		Description: "d",
		Available:   boolPtr(true),
		RequestID:   int64Ptr(9999),
	})
	requireDomainError(t, err, "NOT_FOUND")
}

func int64Ptr(v int64) *int64 { return &v }

func TestItemUpdateOwnerOnly(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	other := fx.seedUser(t, "Eve", "eve@example.com")
	item := fx.seedItem(t, owner.ID, "Drill", true)

	_, err := fx.items.Update(ctx, item.ID, other.ID, service.ItemUpdateInput{Name: "Stolen"})
	requireDomainError(t, err, "FORBIDDEN")

	updated, err := fx.items.Update(ctx, item.ID, owner.ID, service.ItemUpdateInput{
		Description: "Heavy duty",
		Available:   boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Drill", updated.Name)
	assert.Equal(t, "Heavy duty", updated.Description)
	assert.False(t, updated.Available)
}

func TestItemGetWithComments(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	booker := fx.seedUser(t, "Boris", "boris@example.com")
	item := fx.seedItem(t, owner.ID, "Drill", true)
	fx.seedBooking(t, item.ID, booker.ID, domain.BookingStatusApproved,
		time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))

	_, err := fx.comments.Add(ctx, booker.ID, item.ID, "worked great")
	require.NoError(t, err)

	details, err := fx.items.Get(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, details.Comments, 1)
	assert.Equal(t, "worked great", details.Comments[0].Text)
	assert.Equal(t, "Boris", details.Comments[0].AuthorName)
}

func TestItemListByOwnerDecoratesBookings(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	booker := fx.seedUser(t, "Boris", "boris@example.com")
	item := fx.seedItem(t, owner.ID, "Drill", true)

	past := fx.seedBooking(t, item.ID, booker.ID, domain.BookingStatusApproved,
		time.Now().Add(-72*time.Hour), time.Now().Add(-48*time.Hour))
	future := fx.seedBooking(t, item.ID, booker.ID, domain.BookingStatusApproved,
		time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))

	owned, err := fx.items.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.NotNil(t, owned[0].LastBooking)
	require.NotNil(t, owned[0].NextBooking)
	assert.Equal(t, past.ID, owned[0].LastBooking.ID)
	assert.Equal(t, future.ID, owned[0].NextBooking.ID)
}

func TestItemSearch(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	fx.seedItem(t, owner.ID, "Power Drill", true)
	fx.seedItem(t, owner.ID, "Hand Saw", true)
	fx.seedItem(t, owner.ID, "Broken Drill", false)

	found, err := fx.items.Search(ctx, "DRILL")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Power Drill", found[0].Name)
}

func TestItemSearchBlankReturnsEmpty(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	owner := fx.seedUser(t, "Olga", "olga@example.com")
	fx.seedItem(t, owner.ID, "Power Drill", true)

	found, err := fx.items.Search(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}
