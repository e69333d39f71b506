package patient

import (
	"context"
)

type Repository interface {
	// Create inserts p and fills in the generated ID and CreatedAt.
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	// List returns one page of matches ordered by ID, and the total number
	// of matches ignoring paging.
	List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error)
	// WithinTx runs fn in a transaction. Repository calls made with the ctx
	// passed to fn take part in it.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
