package gcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify(nil, "compute"))
}

func TestClassify_RESTErrors(t *testing.T) {
	t.Run("401 is auth", func(t *testing.T) {
		err := Classify(&googleapi.Error{Code: 401, Message: "Login Required"}, "compute")
		assert.True(t, errors.Is(err, ErrAuth))
	})

	t.Run("403 is permission", func(t *testing.T) {
		err := Classify(&googleapi.Error{Code: 403, Message: "Required 'compute.disks.list' permission"}, "compute")
		assert.True(t, errors.Is(err, ErrPermission))
		assert.Contains(t, err.Error(), "compute")
	})

	t.Run("403 with disabled service is api", func(t *testing.T) {
		err := Classify(&googleapi.Error{
			Code:    403,
			Message: "Compute Engine API has not been used in project p1 before or it is disabled. SERVICE_DISABLED",
		}, "compute")
		assert.True(t, errors.Is(err, ErrAPI))
		assert.Contains(t, err.Error(), "not enabled")
	})

	t.Run("404 is not found", func(t *testing.T) {
		err := Classify(&googleapi.Error{Code: 404, Message: "project p1 not found"}, "cloudbilling")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("429 is api", func(t *testing.T) {
		err := Classify(&googleapi.Error{Code: 429, Message: "Quota exceeded"}, "compute")
		assert.True(t, errors.Is(err, ErrAPI))
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("503 is api", func(t *testing.T) {
		err := Classify(&googleapi.Error{Code: 503, Message: "backend error"}, "storage")
		assert.True(t, errors.Is(err, ErrAPI))
	})

	t.Run("wrapped googleapi error still classifies", func(t *testing.T) {
		wrapped := fmt.Errorf("listing disks: %w", &googleapi.Error{Code: 403, Message: "denied"})
		err := Classify(wrapped, "compute")
		assert.True(t, errors.Is(err, ErrPermission))
	})
}

func TestClassify_GRPCErrors(t *testing.T) {
	t.Run("unauthenticated is auth", func(t *testing.T) {
		err := Classify(status.Error(codes.Unauthenticated, "token expired"), "storage")
		assert.True(t, errors.Is(err, ErrAuth))
	})

	t.Run("permission denied", func(t *testing.T) {
		err := Classify(status.Error(codes.PermissionDenied, "caller lacks storage.buckets.list"), "storage")
		assert.True(t, errors.Is(err, ErrPermission))
	})

	t.Run("permission denied with disabled service is api", func(t *testing.T) {
		err := Classify(status.Error(codes.PermissionDenied, "SERVICE_DISABLED: storage.googleapis.com"), "storage")
		assert.True(t, errors.Is(err, ErrAPI))
	})

	t.Run("not found", func(t *testing.T) {
		err := Classify(status.Error(codes.NotFound, "bucket missing"), "storage")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("resource exhausted is api", func(t *testing.T) {
		err := Classify(status.Error(codes.ResourceExhausted, "quota"), "storage")
		assert.True(t, errors.Is(err, ErrAPI))
	})
}

func TestClassify_Fallbacks(t *testing.T) {
	t.Run("missing default credentials is auth", func(t *testing.T) {
		err := Classify(errors.New("google: could not find default credentials"), "cloudbilling")
		assert.True(t, errors.Is(err, ErrAuth))
	})

	t.Run("plain error is api", func(t *testing.T) {
		err := Classify(errors.New("connection reset by peer"), "compute")
		assert.True(t, errors.Is(err, ErrAPI))
	})
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "auth", Kind(fmt.Errorf("%w: x", ErrAuth)))
	assert.Equal(t, "permission", Kind(fmt.Errorf("%w: x", ErrPermission)))
	assert.Equal(t, "not_found", Kind(fmt.Errorf("%w: x", ErrNotFound)))
	assert.Equal(t, "config", Kind(fmt.Errorf("%w: x", ErrConfig)))
	assert.Equal(t, "api", Kind(fmt.Errorf("%w: x", ErrAPI)))
	assert.Equal(t, "api", Kind(errors.New("anything else")))
}
