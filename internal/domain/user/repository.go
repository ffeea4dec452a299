package user

import "context"

// Repository defines the interface for user data operations. Lookups
// return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

// ListFilter represents filtering and pagination options for user list
type ListFilter struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}
