package customer

import "context"

// Repository persists customers. Lookups return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Customer, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Customer, int64, error)
}

type ListFilter struct {
	Search   string
	Page     int
	PageSize int
}
