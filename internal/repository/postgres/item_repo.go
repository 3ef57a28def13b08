package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catebros/lostfound/internal/domain"
)

const itemColumns = `id, type, title, description, category, location, posted_at, status, owner_id, image_path, date_lost, reward, date_found`

type ItemRepo struct {
	pool *pgxpool.Pool
}

func NewItemRepo(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

func (r *ItemRepo) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.Type, item.Title, item.Description, item.Category,
		item.Location, item.PostedAt, item.Status, item.OwnerID,
		item.ImagePath, item.DateLost, item.Reward, item.DateFound,
	)
	return err
}

func (r *ItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	var it domain.Item
	err := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id).Scan(
		&it.ID, &it.Type, &it.Title, &it.Description, &it.Category,
		&it.Location, &it.PostedAt, &it.Status, &it.OwnerID,
		&it.ImagePath, &it.DateLost, &it.Reward, &it.DateFound,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &it, err
}

func (r *ItemRepo) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET title = $1, description = $2, category = $3, location = $4,
			status = $5, image_path = $6, date_lost = $7, reward = $8, date_found = $9
		WHERE id = $10`

	_, err := r.pool.Exec(ctx, query,
		item.Title, item.Description, item.Category, item.Location,
		item.Status, item.ImagePath, item.DateLost, item.Reward,
		item.DateFound, item.ID,
	)
	return err
}

func (r *ItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	return err
}

func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Item, error) {
	return r.listItems(ctx, `SELECT `+itemColumns+` FROM items WHERE owner_id = $1 ORDER BY posted_at DESC`, ownerID)
}

func (r *ItemRepo) ListAll(ctx context.Context) ([]domain.Item, error) {
	return r.listItems(ctx, `SELECT `+itemColumns+` FROM items ORDER BY posted_at DESC`)
}

func (r *ItemRepo) listItems(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(
			&it.ID, &it.Type, &it.Title, &it.Description, &it.Category,
			&it.Location, &it.PostedAt, &it.Status, &it.OwnerID,
			&it.ImagePath, &it.DateLost, &it.Reward, &it.DateFound,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
