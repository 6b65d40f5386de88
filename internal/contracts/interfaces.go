package contracts

import (
	"context"
	"time"
)

// Cache is the TTL cache port used by the orchestrators
// ⭐ SSOT: 캐시 포트 (Redis / in-memory 어댑터)
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DealSource produces raw transaction rows for a query
// ⭐ SSOT: 국토부 API / mock 데이터 공통 인터페이스
type DealSource interface {
	Name() string
	FetchRecords(ctx context.Context, q DealQuery) ([]RawRecord, error)
}

// MetadataLookup resolves static complex metadata by complex name
type MetadataLookup interface {
	Lookup(complexName string) (ComplexMetadata, bool)
}
