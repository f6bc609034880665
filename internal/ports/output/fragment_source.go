package output

import (
	"context"

	"localeboot/internal/domain/entities"
)

// FragmentSource enumerates every locale fragment available to the
// application. Order is not significant; callers sort by path.
type FragmentSource interface {
	Fragments(ctx context.Context) ([]entities.Fragment, error)
}
