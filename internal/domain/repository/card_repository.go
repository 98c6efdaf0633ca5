package repository

import (
	"context"

	"github.com/kotobukicho/kotobuki/internal/domain/entity"
)

// CardRepository is the relational store contract behind the card catalog.
type CardRepository interface {
	Create(ctx context.Context, c *entity.Card) error
	// ListByCreatedDesc returns every card ordered by creation time, newest
	// first. The display-ordering policy is applied by the catalog on top.
	ListByCreatedDesc(ctx context.Context) ([]entity.Card, error)
	GetByCardID(ctx context.Context, cardID string) (*entity.Card, error)
	GetByID(ctx context.Context, id string) (*entity.Card, error)
	// Delete removes by internal id and reports whether a row existed.
	Delete(ctx context.Context, id string) (bool, error)
}
