package medoids

import (
	"errors"
	"fmt"

	"github.com/hupe1980/medoids/internal/kmedoids"
)

var (
	// ErrEmptyDataset is returned when an engine is constructed without vectors.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrInvalidK is returned when k is not in the range [1, n].
	ErrInvalidK = errors.New("k must be between 1 and the number of vectors")

	// ErrIndexOutOfRange is returned when a point index does not address a vector.
	ErrIndexOutOfRange = errors.New("point index out of range")

	// ErrEmptyCluster is returned when a medoid is requested for an empty cluster.
	ErrEmptyCluster = kmedoids.ErrEmptyCluster
)

// ConfigurationError indicates that an engine cannot be constructed from the
// supplied dataset and cluster count.
//
// The underlying sentinel (ErrEmptyDataset or ErrInvalidK) can be accessed via
// errors.Unwrap or matched with errors.Is.
type ConfigurationError struct {
	K     int
	N     int
	cause error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration (k=%d, n=%d): %v", e.K, e.N, e.cause)
}

func (e *ConfigurationError) Unwrap() error { return e.cause }

// DimensionMismatchError indicates that two vectors compared for similarity
// have different lengths. The dataset is structurally invalid and the run
// that hit it is aborted.
type DimensionMismatchError struct {
	I    int
	J    int
	LenI int
	LenJ int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch between vectors %d and %d: %d != %d", e.I, e.J, e.LenI, e.LenJ)
}
