package repository

import (
	"context"
	"time"
)

// CacheRepository - интерфейс кеша ответов. Ядро рекомендаций ничего не
// кеширует само; кешем владеет вызывающий HTTP-слой.
type CacheRepository interface {
	// Get возвращает (nil, nil) при промахе кеша
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
