package deals

import (
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

var fixedNow = time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeMeta is a read-only metadata table keyed by normalized name
type fakeMeta map[string]contracts.ComplexMetadata

func (m fakeMeta) Lookup(name string) (contracts.ComplexMetadata, bool) {
	meta, ok := m[NormalizeComplexName(name)]
	return meta, ok
}

func newTestNormalizer(meta contracts.MetadataLookup) *Normalizer {
	seq := 0
	return NewNormalizer(meta,
		WithClock(fixedClock),
		WithTokenGenerator(func() string {
			seq++
			return "tok" + string(rune('0'+seq))
		}),
	)
}

func deal(price int64, area float64, y, m, d int) contracts.Deal {
	return contracts.Deal{
		Price:        price,
		Area:         area,
		ContractDate: contracts.NewDate(y, m, d),
		Year:         y,
		Month:        m,
	}
}
