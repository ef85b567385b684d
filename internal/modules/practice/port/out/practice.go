package out

import (
	"context"

	"zenstreak/internal/modules/practice/domain"
)

type CatalogSource interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
