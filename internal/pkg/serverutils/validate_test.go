package serverutils_test

import (
	"testing"

	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/pkg/apperrors"
	"notes-sharing-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructPasses(t *testing.T) {
	err := serverutils.ValidateStruct(&dto.SignupRequest{
		Username: "alice",
		Password: "secret123",
		Email:    "alice@example.com",
	})
	assert.NoError(t, err)
}

func TestValidateStructCollectsFieldErrors(t *testing.T) {
	err := serverutils.ValidateStruct(&dto.SignupRequest{
		Email: "not-an-email",
	})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
	require.Len(t, appErr.Fields, 3)

	byField := make(map[string]string)
	for _, fe := range appErr.Fields {
		byField[fe.Field] = fe.Message
	}
	assert.Contains(t, byField, "username")
	assert.Contains(t, byField, "password")
	assert.Equal(t, "email must be a valid email address", byField["email"])
}
