package redis

import (
	"context"
	"strconv"

	"github.com/emailcraft/outreach/internal/db"
)

const (
	defaultHNSWM       = 16
	defaultHNSWEFBuild = 200
)

// CreateIndex creates the FT index for a collection: HASH storage under the
// collection's key prefix with a single HNSW vector field. Content and
// metadata live as plain hash fields and need no schema entries.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	m := def.HNSWM
	if m <= 0 {
		m = defaultHNSWM
	}
	efBuild := def.HNSWEFBuild
	if efBuild <= 0 {
		efBuild = defaultHNSWEFBuild
	}
	metric := def.Distance
	if metric == "" {
		metric = db.DistanceCosine
	}

	args := []string{
		def.Name,
		"ON", "HASH",
		"PREFIX", "1", def.Prefix,
		"SCHEMA",
		def.VectorField, "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(def.Dimensions),
		"DISTANCE_METRIC", string(metric),
		"M", strconv.Itoa(m),
		"EF_CONSTRUCTION", strconv.Itoa(efBuild),
	}

	cmd := s.client.B().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if serverErrContains(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: "FT.CREATE", Key: def.Name, Err: err}
	}
	return nil
}

// IndexExists probes via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.client.B().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if serverErrContains(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: "FT.INFO", Key: name, Err: err}
	}
	return true, nil
}
