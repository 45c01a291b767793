package ports

import "context"

// Transactor runs fn inside a single serializable transaction. Repositories
// called with the context passed to fn participate in that transaction, so a
// validation and the write it guards commit or roll back together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
