package auth

import (
	"testing"

	apperrors "devroom/errors"

	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	t.Run("should accept a valid registration", func(t *testing.T) {
		req := require.New(t)

		err := ValidateRegister(RegisterRequest{
			Email:    "user@example.com",
			Password: "Str0ngEnough",
		})

		req.NoError(err)
	})

	t.Run("should reject a malformed email", func(t *testing.T) {
		req := require.New(t)

		err := ValidateRegister(RegisterRequest{
			Email:    "not-an-email",
			Password: "Str0ngEnough",
		})

		req.Error(err)
	})

	t.Run("should reject a short password", func(t *testing.T) {
		req := require.New(t)

		err := ValidateRegister(RegisterRequest{
			Email:    "user@example.com",
			Password: "Ab1",
		})

		req.Error(err)
	})

	t.Run("should reject a password without the three character classes", func(t *testing.T) {
		req := require.New(t)

		cases := []string{
			"alllowercase1", // no upper
			"ALLUPPERCASE1", // no lower
			"NoNumberHere",  // no digit
		}
		for _, password := range cases {
			err := ValidateRegister(RegisterRequest{
				Email:    "user@example.com",
				Password: password,
			})
			req.ErrorIs(err, apperrors.ErrInvalidPassword, "password %q", password)
		}
	})
}

func TestValidateResetPassword(t *testing.T) {
	t.Run("should require a token", func(t *testing.T) {
		req := require.New(t)

		err := ValidateResetPassword(ResetPasswordRequest{Password: "Str0ngEnough"})

		req.Error(err)
	})

	t.Run("should apply the same complexity rules as registration", func(t *testing.T) {
		req := require.New(t)

		err := ValidateResetPassword(ResetPasswordRequest{
			Token:    "some-token",
			Password: "weakpassword",
		})

		req.ErrorIs(err, apperrors.ErrInvalidPassword)
	})
}
