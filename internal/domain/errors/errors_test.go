package errors

import (
	"net/http"
	"testing"

	"bazaar/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseExecuteError_ImplementsAppError(t *testing.T) {
	driverErr := errors.New("connection reset by peer")

	err := NewDatabaseExecuteError(driverErr, "failed to insert user")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, "database execution failed", err.Message())
	assert.Equal(t, "failed to insert user", err.Details())
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestDatabaseExecuteError_SurvivesServiceWrapping(t *testing.T) {
	// Services wrap repository errors with context before they reach the
	// error middleware; the AppError must stay extractable through the chain.
	wrapped := errors.Wrap(NewDatabaseExecuteError(errors.New("socket closed"), "failed to query shops"), "failed to list shops")

	var appErr AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
}

func TestBaseError_WrapMessageKeepsSentinelIdentity(t *testing.T) {
	wrapped := ErrUserNotFound.WrapMessage("failed to load user")

	var appErr AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, "USER_NOT_FOUND", appErr.ErrorCode())
	assert.ErrorIs(t, wrapped, ErrUserNotFound)
}
