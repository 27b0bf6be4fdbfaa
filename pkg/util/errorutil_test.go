package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	err := NewConflict("already approved", map[string]any{"status": "approved"})

	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "approved", domainErr.Details["status"])
}

func TestToDomainErrorUnwrapsWrapped(t *testing.T) {
	err := fmt.Errorf("lookup donor: %w", NewNotFound("donor", nil))

	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "internal server error", domainErr.Message)
}

func TestMapErrorNilStaysNil(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.Error(t, MapError(errors.New("boom")))
}
