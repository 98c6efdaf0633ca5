package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotobukicho/kotobuki/internal/domain/entity"
	"github.com/kotobukicho/kotobuki/internal/domain/repository"
	"github.com/kotobukicho/kotobuki/pkg/apperr"
)

type CardRepository struct {
	pool *pgxpool.Pool
}

func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

func (r *CardRepository) Create(ctx context.Context, c *entity.Card) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO cards (user_id, card_id, title, description, category, image_url, music_url, music_file_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id, created_at, updated_at
	`, c.UserID, c.CardID, c.Title, c.Description, c.Category, c.ImageURL, c.MusicURL, c.MusicFileURL)

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Wrap(apperr.KindConflict, "Card id already exists", err)
		}
		return apperr.Wrap(apperr.KindDatabase, "Internal server error", err)
	}
	return nil
}

func (r *CardRepository) ListByCreatedDesc(ctx context.Context) ([]entity.Card, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, card_id, title, description, category, image_url, music_url, music_file_url, created_at, updated_at
		FROM cards
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDatabase, "Internal server error", err)
	}
	defer rows.Close()

	cards := make([]entity.Card, 0)
	for rows.Next() {
		var c entity.Card
		if err := scanCard(rows, &c); err != nil {
			return nil, apperr.Wrap(apperr.KindDatabase, "Internal server error", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindDatabase, "Internal server error", err)
	}
	return cards, nil
}

func (r *CardRepository) GetByCardID(ctx context.Context, cardID string) (*entity.Card, error) {
	return r.get(ctx, `
		SELECT id, user_id, card_id, title, description, category, image_url, music_url, music_file_url, created_at, updated_at
		FROM cards
		WHERE card_id = $1
		LIMIT 1
	`, cardID)
}

func (r *CardRepository) GetByID(ctx context.Context, id string) (*entity.Card, error) {
	return r.get(ctx, `
		SELECT id, user_id, card_id, title, description, category, image_url, music_url, music_file_url, created_at, updated_at
		FROM cards
		WHERE id = $1
	`, id)
}

func (r *CardRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return false, apperr.Wrap(apperr.KindDatabase, "Internal server error", err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *CardRepository) get(ctx context.Context, query string, arg any) (*entity.Card, error) {
	c := &entity.Card{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := scanCard(row, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.KindNotFound, "Card not found")
		}
		return nil, apperr.Wrap(apperr.KindDatabase, "Internal server error", err)
	}
	return c, nil
}

func scanCard(row pgx.Row, c *entity.Card) error {
	return row.Scan(&c.ID, &c.UserID, &c.CardID, &c.Title, &c.Description, &c.Category,
		&c.ImageURL, &c.MusicURL, &c.MusicFileURL, &c.CreatedAt, &c.UpdatedAt)
}

var _ repository.CardRepository = (*CardRepository)(nil)
