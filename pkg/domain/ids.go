package domain

import (
	"strings"
	"unicode/utf8"

	dErrors "inu/pkg/domain-errors"
)

// MaxAccountIDLength bounds account identifiers accepted at trust boundaries.
const MaxAccountIDLength = 128

// AccountID identifies a ledger participant. The zero value is the zero
// account: it owns nothing and never authorizes anything.
type AccountID string

// ZeroAccount is returned by ownership queries for names nobody holds.
const ZeroAccount AccountID = ""

// IsZero reports whether a is the zero account.
func (a AccountID) IsZero() bool {
	return a == ZeroAccount
}

func (a AccountID) String() string {
	return string(a)
}

// ParseAccountID validates an account identifier received from outside the
// process (token subject, path parameter, request body).
func ParseAccountID(s string) (AccountID, error) {
	if s == "" {
		return ZeroAccount, dErrors.New(dErrors.CodeInvalidInput, "account id is required")
	}
	if !utf8.ValidString(s) {
		return ZeroAccount, dErrors.New(dErrors.CodeInvalidInput, "account id must be valid UTF-8")
	}
	if strings.TrimSpace(s) != s {
		return ZeroAccount, dErrors.New(dErrors.CodeInvalidInput, "account id must not contain surrounding whitespace")
	}
	if len(s) > MaxAccountIDLength {
		return ZeroAccount, dErrors.New(dErrors.CodeInvalidInput, "account id is too long")
	}
	return AccountID(s), nil
}
