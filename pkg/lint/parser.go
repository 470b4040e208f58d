package lint

import (
	"context"

	"github.com/yaklabco/vuelint/pkg/tplast"
)

// Parser turns a template file into a FileSnapshot. It is defined here, on
// the consumer side; parser/vue provides the implementation.
//
// Implementations must be deterministic for a given (path, content) pair,
// must not perform I/O and must not mutate content.
type Parser interface {
	// Parse returns a snapshot whose Path is path, whose Content equals
	// content and whose nodes all point back at it through File. Template
	// problems such as an unexpected end of file are recorded in the
	// snapshot's Errors; an error return means the file could not be
	// processed at all and no snapshot is returned.
	Parse(ctx context.Context, path string, content []byte) (*tplast.FileSnapshot, error)
}
