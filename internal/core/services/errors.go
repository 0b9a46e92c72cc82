package services

import (
	"errors"
	"fmt"

	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

// ErrorKind classifies how a failure affects a generation run.
type ErrorKind int

const (
	// KindPrecondition aborts before any catalog call.
	KindPrecondition ErrorKind = iota + 1
	// KindDegradedSource substitutes an empty result and continues.
	KindDegradedSource
	// KindDegradedMatching substitutes unfiltered candidates and continues.
	KindDegradedMatching
	// KindSectionStarved skips one section.
	KindSectionStarved
	// KindTerminal aborts the run.
	KindTerminal
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindDegradedSource:
		return "degraded-source"
	case KindDegradedMatching:
		return "degraded-matching"
	case KindSectionStarved:
		return "section-starved"
	case KindTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// GenerationError is returned by Generator.GeneratePlaylist. StatusCode is
// the catalog's HTTP status when the cause was a catalog response.
type GenerationError struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Err        error
}

func newGenerationError(kind ErrorKind, op string, err error) *GenerationError {
	ge := &GenerationError{Kind: kind, Op: op, Err: err}
	var ce *ports.CatalogError
	if errors.As(err, &ce) {
		ge.StatusCode = ce.StatusCode
	}
	return ge
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("service: %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of a *GenerationError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}

// asGenerationError wraps err as a terminal failure of op unless it already
// is a *GenerationError.
func asGenerationError(op string, err error) error {
	if _, ok := KindOf(err); ok {
		return err
	}
	return newGenerationError(KindTerminal, op, err)
}
