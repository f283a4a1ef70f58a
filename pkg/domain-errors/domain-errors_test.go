package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// These are the error codes every layer relies on to classify upstream
// failures, so the invariants "wrapped domain errors preserve original code"
// and "errors.Is matches by code" get explicit coverage.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeUnknownTable, Message: "no table named foo"}
		s.Equal("no table named foo", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeUnknownTable}
		s.Equal("unknown_table", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	inner := errors.New("connection refused")
	err := Wrap(inner, CodeUpstream, "page fetch failed")
	s.ErrorIs(err, inner)
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	err := New(CodeRateLimited, "rate limit retries exhausted")
	s.ErrorIs(err, &Error{Code: CodeRateLimited})
	s.NotErrorIs(err, &Error{Code: CodeTimeout})
}

func (s *DomainErrorsSuite) TestWrapPreservesExistingCode() {
	original := New(CodeUnknownTable, "no such alias")
	wrapped := Wrap(original, CodeInternal, "fetch failed")

	var e *Error
	s.Require().ErrorAs(wrapped, &e)
	s.Equal(CodeUnknownTable, e.Code)
	s.Equal("fetch failed", e.Message)
}

func (s *DomainErrorsSuite) TestHasCode() {
	err := Wrap(errors.New("boom"), CodeTimeout, "deadline exceeded")
	s.True(HasCode(err, CodeTimeout))
	s.False(HasCode(err, CodeUpstream))
	s.False(HasCode(errors.New("plain"), CodeTimeout))
}
