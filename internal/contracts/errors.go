package contracts

import (
	"errors"
	"fmt"
)

// Pipeline failures the caller must be able to tell apart
var (
	// ErrNoUpstreamRows: 국토부 API가 0건을 반환
	ErrNoUpstreamRows = errors.New("upstream returned no rows")

	// ErrUnparsablePayload: JSON 이 아닌 응답 (HTML 오류 페이지, XML 등)
	ErrUnparsablePayload = errors.New("upstream payload unparsable")

	// ErrUpstreamStatus: non-2xx 응답
	ErrUpstreamStatus = errors.New("upstream request failed")

	// ErrNoQualifyingDeals: 면적/지역 필터 후 0건
	ErrNoQualifyingDeals = errors.New("no qualifying deals")

	// ErrInvalidQuery: 잘못된 조회 조건
	ErrInvalidQuery = errors.New("invalid query")
)

// UpstreamError carries transport context for an upstream failure
type UpstreamError struct {
	Source string // "molit", "fx", "news"
	Kind   error  // one of the sentinels above
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Source, e.Kind, e.Detail)
}

// Unwrap exposes the sentinel for errors.Is
func (e *UpstreamError) Unwrap() error {
	return e.Kind
}

// NewUpstreamError builds an UpstreamError
func NewUpstreamError(source string, kind error, format string, args ...any) *UpstreamError {
	return &UpstreamError{
		Source: source,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}
