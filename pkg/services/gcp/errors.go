package gcp

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error kinds. AuthError aborts the whole run; NotFound and Permission are
// fatal when raised by project discovery and per-project recoverable when
// raised by scanners; API errors are recorded per project and the run
// continues; Config errors are fatal at startup.
var (
	ErrAuth       = errors.New("authentication failed")
	ErrPermission = errors.New("permission denied")
	ErrNotFound   = errors.New("resource not found")
	ErrAPI        = errors.New("api error")
	ErrConfig     = errors.New("invalid configuration")
)

// Classify converts raw GCP API errors into one of the standard kinds,
// preserving the cause in the wrap chain. Handles both REST errors
// (googleapi.Error) and gRPC status errors.
func Classify(err error, apiName string) error {
	if err == nil {
		return nil
	}

	if grpcStatus, ok := status.FromError(err); ok {
		errStr := err.Error()

		switch grpcStatus.Code() {
		case codes.Unauthenticated:
			return fmt.Errorf("%w: %s", ErrAuth, grpcStatus.Message())
		case codes.PermissionDenied:
			if strings.Contains(errStr, "SERVICE_DISABLED") {
				return fmt.Errorf("%w: %s API not enabled", ErrAPI, apiName)
			}
			return fmt.Errorf("%w: %s", ErrPermission, apiName)
		case codes.NotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, apiName)
		case codes.ResourceExhausted:
			return fmt.Errorf("%w: %s rate limited", ErrAPI, apiName)
		case codes.Unavailable, codes.Internal:
			return fmt.Errorf("%w: %s: %s", ErrAPI, apiName, grpcStatus.Message())
		}
		return fmt.Errorf("%w: %s (%s): %s", ErrAPI, apiName, grpcStatus.Code(), grpcStatus.Message())
	}

	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		errStr := googleErr.Error()

		switch googleErr.Code {
		case 401:
			return fmt.Errorf("%w: %s", ErrAuth, googleErr.Message)
		case 403:
			if strings.Contains(errStr, "SERVICE_DISABLED") || strings.Contains(errStr, "accessNotConfigured") {
				return fmt.Errorf("%w: %s API not enabled", ErrAPI, apiName)
			}
			return fmt.Errorf("%w: %s", ErrPermission, apiName)
		case 404:
			return fmt.Errorf("%w: %s", ErrNotFound, apiName)
		case 429:
			return fmt.Errorf("%w: %s rate limited", ErrAPI, apiName)
		case 500, 502, 503, 504:
			return fmt.Errorf("%w: %s returned code %d", ErrAPI, apiName, googleErr.Code)
		}
		return fmt.Errorf("%w: %s (code %d): %s", ErrAPI, apiName, googleErr.Code, googleErr.Message)
	}

	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "could not find default credentials"),
		strings.Contains(errStr, "oauth2: cannot fetch token"):
		return fmt.Errorf("%w: %v", ErrAuth, err)
	case strings.Contains(errStr, "SERVICE_DISABLED"):
		return fmt.Errorf("%w: %s API not enabled", ErrAPI, apiName)
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return fmt.Errorf("%w: %s", ErrPermission, apiName)
	}

	return fmt.Errorf("%w: %s: %v", ErrAPI, apiName, err)
}

// Kind names the error kind for logs and report cells.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConfig):
		return "config"
	default:
		return "api"
	}
}
