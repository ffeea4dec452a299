package support

import "context"

// Repository persists supports. Lookups return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, support *Support) error
	Update(ctx context.Context, support *Support) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Support, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Support, error)
	GetByEmail(ctx context.Context, email string) (*Support, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Support, int64, error)
	ListAll(ctx context.Context) ([]*Support, error)
}

type ListFilter struct {
	Search   string
	Page     int
	PageSize int
}
