package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/fs"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/memory"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/postgres"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/redis"
	s3storage "github.com/tendant/simple-pitch/pkg/simplepitch/storage/s3"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/sqlite"
)

// Storage kinds recognised in storage URLs
const (
	StorageMemory   = "memory"
	StorageFS       = "fs"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
)

// StorageLocation is a parsed storage URL
type StorageLocation struct {
	Kind string
	URL  string // connection URL for redis and postgres
	Path string // directory for fs, database file for sqlite

	Prefix string // key prefix for redis and s3

	S3 s3storage.Config
}

// ParseStorageURL parses a storage URL into a StorageLocation
func ParseStorageURL(raw string) (StorageLocation, error) {
	if raw == "" {
		return StorageLocation{}, fmt.Errorf("storage url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return StorageLocation{}, fmt.Errorf("invalid storage url %q: %w", raw, err)
	}

	switch u.Scheme {
	case "memory":
		return StorageLocation{Kind: StorageMemory}, nil

	case "file":
		path := localPath(u)
		if path == "" {
			return StorageLocation{}, fmt.Errorf("file storage url requires a directory: %q", raw)
		}
		return StorageLocation{Kind: StorageFS, Path: path}, nil

	case "sqlite":
		path := localPath(u)
		if path == "" {
			return StorageLocation{}, fmt.Errorf("sqlite storage url requires a database path: %q", raw)
		}
		return StorageLocation{Kind: StorageSQLite, Path: path}, nil

	case "redis", "rediss":
		prefix := u.Query().Get("prefix")
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		q := u.Query()
		q.Del("prefix")
		u.RawQuery = q.Encode()
		return StorageLocation{Kind: StorageRedis, URL: u.String(), Prefix: prefix}, nil

	case "postgres", "postgresql":
		return StorageLocation{Kind: StoragePostgres, URL: raw}, nil

	case "s3":
		if u.Host == "" {
			return StorageLocation{}, fmt.Errorf("s3 storage url requires a bucket: %q", raw)
		}
		q := u.Query()
		cfg := s3storage.Config{
			Bucket:                 u.Host,
			Region:                 q.Get("region"),
			Prefix:                 strings.TrimPrefix(u.Path, "/"),
			Endpoint:               q.Get("endpoint"),
			AccessKeyID:            os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:        os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SSEAlgorithm:           q.Get("sse"),
			SSEKMSKeyID:            q.Get("kms_key_id"),
			CreateBucketIfNotExist: parseBool(q.Get("create_bucket")),
			UsePathStyle:           parseBool(q.Get("path_style")),
		}
		if p := q.Get("prefix"); p != "" {
			cfg.Prefix = p
		}
		if cfg.Region == "" {
			cfg.Region = "us-east-1"
		}
		cfg.EnableSSE = cfg.SSEAlgorithm != ""
		return StorageLocation{Kind: StorageS3, Prefix: cfg.Prefix, S3: cfg}, nil

	default:
		return StorageLocation{}, fmt.Errorf("unsupported storage scheme %q", u.Scheme)
	}
}

// localPath accepts both file:///abs/dir and file://./rel/dir
func localPath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	return u.Host + u.Path
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// OpenBackend opens the backend described by raw. The returned closer
// releases any connection held by the backend and is never nil.
func OpenBackend(ctx context.Context, raw string) (simplepitch.Backend, func() error, error) {
	parsed, err := ParseStorageURL(raw)
	if err != nil {
		return nil, nil, err
	}
	nop := func() error { return nil }

	switch parsed.Kind {
	case StorageMemory:
		return memory.New(), nop, nil

	case StorageFS:
		b, err := fs.New(fs.Config{BaseDir: parsed.Path})
		if err != nil {
			return nil, nil, err
		}
		return b, nop, nil

	case StorageSQLite:
		b, err := sqlite.Open(parsed.Path)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil

	case StorageRedis:
		b, err := redis.NewFromURL(ctx, parsed.URL, parsed.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil

	case StoragePostgres:
		b, pool, err := postgres.Connect(ctx, parsed.URL)
		if err != nil {
			return nil, nil, err
		}
		return b, func() error { pool.Close(); return nil }, nil

	case StorageS3:
		b, err := s3storage.New(parsed.S3)
		if err != nil {
			return nil, nil, err
		}
		return b, nop, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage kind %q", parsed.Kind)
}
