package repository

import (
	"context"

	"github.com/kotobukicho/kotobuki/internal/domain/entity"
)

// UserRepository is the credential store contract consumed by the auth service.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
