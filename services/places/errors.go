package places

import "net/http"

// ValidationError reports a malformed or incomplete search request.
type ValidationError struct {
	Message string
	Details string
}

func (e *ValidationError) Error() string { return e.Message }

// ProviderConfigError reports a structural provider problem: the provider
// rejected the request shape, denied the key, or no provider is configured
// at all. Never a fallback trigger.
type ProviderConfigError struct {
	Message string
	Details string
}

func (e *ProviderConfigError) Error() string { return e.Message }

// NoResultsError reports that every configured provider was exhausted with
// nothing usable.
type NoResultsError struct {
	Message string
	Details string
}

func (e *NoResultsError) Error() string { return e.Message }

// ConnectivityError reports a transport-level failure talking to the
// primary provider.
type ConnectivityError struct {
	Message string
	Details string
	Err     error
}

func (e *ConnectivityError) Error() string { return e.Message }
func (e *ConnectivityError) Unwrap() error { return e.Err }

// HTTPStatus maps a search error to its response status code.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ValidationError, *ProviderConfigError:
		return http.StatusBadRequest
	case *NoResultsError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage extracts the user-facing message and details for a search
// error.
func UserMessage(err error) (message, details string) {
	switch e := err.(type) {
	case *ValidationError:
		return e.Message, e.Details
	case *ProviderConfigError:
		return e.Message, e.Details
	case *NoResultsError:
		return e.Message, e.Details
	case *ConnectivityError:
		return e.Message, e.Details
	default:
		return "Error en la búsqueda", "Ocurrió un problema inesperado. Intenta nuevamente"
	}
}
