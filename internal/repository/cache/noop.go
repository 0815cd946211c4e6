package cache

import (
	"context"

	"github.com/isochrone-map/internal/domain/repository"
)

// noopCacheRepository используется, когда Redis выключен: всегда промах, запись игнорируется
type noopCacheRepository struct{}

func NewNoopCacheRepository() repository.CacheRepository {
	return noopCacheRepository{}
}

func (noopCacheRepository) GetTile(context.Context, int, int, int) ([]byte, error) { return nil, nil }

func (noopCacheRepository) SetTile(context.Context, int, int, int, []byte) error { return nil }
