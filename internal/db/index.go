package db

import "errors"

// DistanceMetric used by FT.SEARCH vector similarity queries.
type DistanceMetric string

const (
	// DistanceCosine is cosine distance.
	DistanceCosine DistanceMetric = "COSINE"
	// DistanceL2 is Euclidean distance.
	DistanceL2 DistanceMetric = "L2"
)

// IndexDefinition describes the FT index for one document collection: a
// single HNSW vector field plus the raw content stored alongside it.
type IndexDefinition struct {
	Name        string
	Prefix      string
	VectorField string
	Dimensions  int
	Distance    DistanceMetric
	HNSWM       int
	HNSWEFBuild int
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if idx.Prefix == "" {
		return errors.New("key prefix is required")
	}
	if idx.VectorField == "" {
		return errors.New("vector field name is required")
	}
	if idx.Dimensions <= 0 {
		return errors.New("vector field requires positive dimensions")
	}
	return nil
}
