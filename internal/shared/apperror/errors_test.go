package apperror

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	assert.NoError(t, Validation(nil))

	fieldErrs := validation.Errors{"title": errors.New("cannot be blank")}
	err := Validation(fieldErrs)

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	var fe validation.Errors
	assert.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "title")
}

func TestExternal(t *testing.T) {
	assert.NoError(t, External("minio", "put", nil))

	cause := errors.New("connection refused")
	err := External("minio", "put", cause)

	assert.ErrorIs(t, err, ErrExternalService)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "minio put: connection refused", err.Error())
}
