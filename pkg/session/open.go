package session

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend string
	Dir     string // FileStore directory
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open builds the store named by opts.Backend. An empty backend is
// treated as BackendMemory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		fs, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendRedis:
		rs, err := NewRedisStore(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		return rs, nil
	case BackendMongo:
		ms, err := NewMongoStore(ctx, opts.Mongo)
		if err != nil {
			return nil, err
		}
		return ms, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", opts.Backend)
	}
}
