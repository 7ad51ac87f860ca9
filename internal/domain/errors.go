package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the route pipeline.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindMissingCredentials ErrorKind = "MISSING_CREDENTIALS"
	KindProviderAuth       ErrorKind = "PROVIDER_AUTH"
	KindProviderQuota      ErrorKind = "PROVIDER_QUOTA"
	KindProviderTransport  ErrorKind = "PROVIDER_TRANSPORT"
	KindNoValidAddresses   ErrorKind = "NO_VALID_ADDRESSES"
	KindInvalidInput       ErrorKind = "INVALID_INPUT"
)

// RouteError carries an internal classification, a Dutch user-facing message and
// the underlying cause.
type RouteError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *RouteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RouteError) Unwrap() error { return e.Err }

// Is matches any RouteError of the same kind, so the sentinels below work with
// errors.Is regardless of message or cause.
func (e *RouteError) Is(target error) bool {
	t, ok := target.(*RouteError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound           = &RouteError{Kind: KindNotFound}
	ErrMissingCredentials = &RouteError{Kind: KindMissingCredentials}
	ErrProviderAuth       = &RouteError{Kind: KindProviderAuth}
	ErrProviderQuota      = &RouteError{Kind: KindProviderQuota}
	ErrProviderTransport  = &RouteError{Kind: KindProviderTransport}
	ErrNoValidAddresses   = &RouteError{Kind: KindNoValidAddresses}
	ErrInvalidInput       = &RouteError{Kind: KindInvalidInput}
)

func NewMissingCredentialsError() *RouteError {
	return &RouteError{
		Kind:    KindMissingCredentials,
		Message: "RouteXL inloggegevens ontbreken. Stel ROUTEXL_USERNAME en ROUTEXL_PASSWORD in.",
	}
}

func NewProviderAuthError(status int, cause error) *RouteError {
	return &RouteError{
		Kind:    KindProviderAuth,
		Message: "RouteXL inloggegevens onjuist.",
		Status:  status,
		Err:     cause,
	}
}

func NewProviderQuotaError(status int, cause error) *RouteError {
	return &RouteError{
		Kind:    KindProviderQuota,
		Message: "RouteXL limiet bereikt (max 20 stops gratis).",
		Status:  status,
		Err:     cause,
	}
}

func NewProviderTransportError(msg string, status int, cause error) *RouteError {
	return &RouteError{
		Kind:    KindProviderTransport,
		Message: msg,
		Status:  status,
		Err:     cause,
	}
}

func NewNotFoundError(address string) *RouteError {
	return &RouteError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("Kon adres niet vinden: %s", address),
	}
}

func NewNoValidAddressesError(msg string) *RouteError {
	return &RouteError{Kind: KindNoValidAddresses, Message: msg}
}

func NewInvalidInputError(msg string, cause error) *RouteError {
	return &RouteError{Kind: KindInvalidInput, Message: msg, Err: cause}
}

// UserMessage returns the Dutch message of the first RouteError in err's chain.
func UserMessage(err error) string {
	var re *RouteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return "Interne server fout"
}

// KindOf returns the kind of the first RouteError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var re *RouteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
