package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rental-service/internal/service"
)

func TestRequestCreate(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	requestor := fx.seedUser(t, "Rita", "rita@example.com")

	request, err := fx.requests.Create(ctx, requestor.ID, "need a ladder")
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, requestor.ID, request.RequestorID)
	assert.False(t, request.Created.IsZero())
}

func TestRequestCreateValidation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	requestor := fx.seedUser(t, "Rita", "rita@example.com")

	_, err := fx.requests.Create(ctx, 404, "need a ladder")
	requireDomainError(t, err, "NOT_FOUND")

	_, err = fx.requests.Create(ctx, requestor.ID, "   ")
	requireDomainError(t, err, "VALIDATION_FAILED")
}

func TestRequestListsSplitByRequestor(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	rita := fx.seedUser(t, "Rita", "rita@example.com")
	otto := fx.seedUser(t, "Otto", "otto@example.com")

	mine, err := fx.requests.Create(ctx, rita.ID, "need a ladder")
	require.NoError(t, err)
	theirs, err := fx.requests.Create(ctx, otto.ID, "need a tent")
	require.NoError(t, err)

	own, err := fx.requests.ListOwn(ctx, rita.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].Request.ID)

	others, err := fx.requests.ListOthers(ctx, rita.ID)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, theirs.ID, others[0].Request.ID)

	_, err = fx.requests.ListOwn(ctx, 404)
	requireDomainError(t, err, "NOT_FOUND")

	_, err = fx.requests.ListOthers(ctx, 404)
	requireDomainError(t, err, "NOT_FOUND")
}

func TestRequestListOwnNewestFirst(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	rita := fx.seedUser(t, "Rita", "rita@example.com")

	first, err := fx.requests.Create(ctx, rita.ID, "need a ladder")
	require.NoError(t, err)
	second, err := fx.requests.Create(ctx, rita.ID, "need a tent")
	require.NoError(t, err)

	own, err := fx.requests.ListOwn(ctx, rita.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].Request.ID)
	assert.Equal(t, first.ID, own[1].Request.ID)
}

func TestRequestGetDecoratedWithItems(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	rita := fx.seedUser(t, "Rita", "rita@example.com")
	owner := fx.seedUser(t, "Olga", "olga@example.com")

	request, err := fx.requests.Create(ctx, rita.ID, "need a ladder")
	require.NoError(t, err)

	item, err := fx.items.Add(ctx, owner.ID, service.ItemCreateInput{
		Name:        "Ladder",
		Description: "3m aluminium ladder",
		Available:   boolPtr(true),
		RequestID:   &request.ID,
	})
	require.NoError(t, err)

	details, err := fx.requests.Get(ctx, rita.ID, request.ID)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	assert.Equal(t, item.ID, details.Items[0].ID)
	assert.Equal(t, "Ladder", details.Items[0].Name)
	assert.Equal(t, owner.ID, details.Items[0].OwnerID)
}

func TestRequestGetErrors(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	rita := fx.seedUser(t, "Rita", "rita@example.com")

	_, err := fx.requests.Get(ctx, 404, 1)
	requireDomainError(t, err, "NOT_FOUND")

	_, err = fx.requests.Get(ctx, rita.ID, 9999)
	requireDomainError(t, err, "NOT_FOUND")
}
