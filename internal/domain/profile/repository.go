package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	// Get returns ErrNotFound when the user has no profile row yet.
	Get(ctx context.Context, userID uuid.UUID) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
	SetResume(ctx context.Context, userID uuid.UUID, resume string) error
}
