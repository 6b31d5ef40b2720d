// Package catalog aggregates problems from third-party catalogs into a
// single in-memory snapshot with explicit, operator-triggered refresh.
package catalog

import (
	"context"

	"github.com/noah-isme/codearena-go-api/internal/models"
)

// Source fetches one upstream catalog. Implementations keep their failures
// to themselves: a broken source must never prevent a sibling from
// contributing to a refresh.
type Source interface {
	Name() string
	FetchBatch(ctx context.Context) ([]models.Problem, error)
}
