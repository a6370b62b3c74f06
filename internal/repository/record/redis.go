package record

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/evalview/internal/domain"
	domrec "github.com/kailas-cloud/evalview/internal/domain/record"
)

const defaultBatchSize = 100

// store is the consumer interface for loading records (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
}

// RedisSource loads records stored as JSON strings under <prefix>record:<doc_id>.
type RedisSource struct {
	store     store
	prefix    string
	batchSize int
	logger    *zap.Logger
}

// NewRedisSource creates a Redis-backed record source.
func NewRedisSource(s store, prefix string, logger *zap.Logger) *RedisSource {
	return &RedisSource{store: s, prefix: prefix, batchSize: defaultBatchSize, logger: logger}
}

// WithBatchSize sets how many keys go into one MGET.
func (r *RedisSource) WithBatchSize(n int) *RedisSource {
	if n > 0 {
		r.batchSize = n
	}
	return r
}

// Load returns records ordered by key.
func (r *RedisSource) Load(ctx context.Context) ([]domrec.Record, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"record:*")
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	sort.Strings(keys)

	out := make([]domrec.Record, 0, len(keys))
	for start := 0; start < len(keys); start += r.batchSize {
		end := min(start+r.batchSize, len(keys))
		vals, err := r.store.MGet(ctx, keys[start:end])
		if err != nil {
			return nil, fmt.Errorf("get records: %w", err)
		}
		for i, raw := range vals {
			if raw == nil {
				// expired between SCAN and MGET
				continue
			}
			rec, err := domrec.New(raw)
			if err != nil {
				r.logger.Warn("skipping record",
					zap.String("key", keys[start+i]),
					zap.Error(domain.NewRecordError(start+i+1, err)))
				continue
			}
			out = append(out, rec)
		}
	}
	r.logger.Info("records loaded", zap.String("prefix", r.prefix), zap.Int("count", len(out)))
	return out, nil
}
