package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/rental-service/internal/domain"
)

// RequestRepository encapsulates item-request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error)
	ListByOtherRequestors(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository returns a Postgres-backed implementation.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.ItemRequest) error {
	const query = `
        INSERT INTO item_requests (description, requestor_id, created)
        VALUES ($1, $2, $3)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		request.Description,
		request.RequestorID,
		request.Created,
	).Scan(&request.ID)
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	const query = `
        SELECT id, description, requestor_id, created
        FROM item_requests WHERE id=$1`

	var request domain.ItemRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.Description,
		&request.RequestorID,
		&request.Created,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	const query = `
        SELECT id, description, requestor_id, created
        FROM item_requests WHERE requestor_id=$1
        ORDER BY created DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, requestorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListByOtherRequestors(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	const query = `
        SELECT id, description, requestor_id, created
        FROM item_requests WHERE requestor_id <> $1
        ORDER BY created DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, requestorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]domain.ItemRequest, error) {
	var result []domain.ItemRequest
	for rows.Next() {
		var request domain.ItemRequest
		if err := rows.Scan(
			&request.ID,
			&request.Description,
			&request.RequestorID,
			&request.Created,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
