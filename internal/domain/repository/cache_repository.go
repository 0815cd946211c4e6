package repository

import "context"

// CacheRepository - кеш закодированных тайлов подложки. Срок жизни задаёт реализация.
type CacheRepository interface {
	// GetTile получает тайл из кеша, nil при промахе
	GetTile(ctx context.Context, z, x, y int) ([]byte, error)

	// SetTile сохраняет тайл в кеше
	SetTile(ctx context.Context, z, x, y int, data []byte) error
}
