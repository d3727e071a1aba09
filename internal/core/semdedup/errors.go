package semdedup

import "fmt"

// ConfigurationError reports invalid dedup parameters. Validation runs
// before any embedding or clustering work; bad parameters are never clamped.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid dedup configuration: " + e.Reason
}

// EmbeddingError reports that the embedding backend could not produce
// vectors. The run aborts: a partial embedding set is not valid input for
// clustering.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// DimensionMismatchError reports an embedding whose length disagrees with
// the corpus-wide dimension. Fatal, since the matrix math downstream is
// undefined otherwise.
type DimensionMismatchError struct {
	Index int
	Want  int
	Got   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding %d has dimension %d, expected %d", e.Index, e.Got, e.Want)
}
