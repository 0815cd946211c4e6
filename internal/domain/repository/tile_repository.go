package repository

import (
	"context"
	"image"
)

// TileRepository определяет методы для получения тайлов подложки
type TileRepository interface {
	// GetTile возвращает декодированный тайл z/x/y в проекции Web Mercator
	GetTile(ctx context.Context, z, x, y int) (image.Image, error)
}
