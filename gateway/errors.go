package gateway

import (
	"errors"
	"fmt"

	"github.com/s0up4200/qbitgate/qbittorrent"
)

// Kind classifies a gateway failure
type Kind int

const (
	// KindValidation is a malformed or missing request field. No upstream call was made.
	KindValidation Kind = iota + 1
	// KindUpstreamUnavailable is a failed upstream call: transport, non-2xx, or undecodable body.
	KindUpstreamUnavailable
	// KindUpstreamSemantic is an upstream call that succeeded but reported failure in its body.
	KindUpstreamSemantic
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindUpstreamSemantic:
		return "upstream_semantic"
	default:
		return "unknown"
	}
}

// Error is returned by every Service operation
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError reports a bad request field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func invalid(op, field, reason string) error {
	return &Error{Kind: KindValidation, Op: op, Err: &ValidationError{Field: field, Reason: reason}}
}

// upstream classifies an error coming back from the qBittorrent client
func upstream(op string, err error) error {
	if errors.Is(err, qbittorrent.ErrAddFailed) {
		return &Error{Kind: KindUpstreamSemantic, Op: op, Err: err}
	}
	return &Error{Kind: KindUpstreamUnavailable, Op: op, Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not a gateway error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err was caused by the request itself
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsUpstreamUnavailable reports whether the upstream call failed
func IsUpstreamUnavailable(err error) bool {
	return KindOf(err) == KindUpstreamUnavailable
}

// IsUpstreamSemantic reports whether the upstream rejected the request in its body
func IsUpstreamSemantic(err error) bool {
	return KindOf(err) == KindUpstreamSemantic
}
