package services

import (
	"fmt"
	"log/slog"

	"devroom/auth"
	"devroom/domain"
	apperrors "devroom/errors"
	"devroom/mail"
	"devroom/repositories"
)

type IAuthService interface {
	Register(email, password string) (domain.User, Token, error)
	Login(email, password string) (domain.User, Token, error)
	Profile(userID string) (domain.User, error)
	ForgotPassword(email, resetURL string) error
	ResetPassword(token, newPassword string) error
}

type AuthService struct {
	userRepository repositories.IUserRepository
	tokens         *auth.TokenManager
	mailer         mail.Mailer
	log            *slog.Logger
}

type Token string

func NewAuthService(repo repositories.IUserRepository, tokens *auth.TokenManager,
	mailer mail.Mailer, log *slog.Logger) IAuthService {
	return &AuthService{userRepository: repo, tokens: tokens, mailer: mailer, log: log}
}

func (s *AuthService) Register(email, password string) (domain.User, Token, error) {
	valReq := auth.RegisterRequest{Email: email, Password: password}

	// Validate business rules before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return domain.User{}, "", fmt.Errorf("%w: %v", apperrors.ErrInvalidPassword, err)
	}

	// Hashing happens in the service layer so the repository never sees a
	// plain password.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hashing failed: %w", err)
	}

	userID, err := s.userRepository.CreateUser(email, hashedPassword)
	if err != nil {
		return domain.User{}, "", err // Propagates ErrUserAlreadyExists if email is taken
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.tokens.GenerateSession(domain.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return domain.User{}, "", apperrors.ErrTokenGeneration
	}

	return user, Token(token), nil
}

func (s *AuthService) Login(email, password string) (domain.User, Token, error) {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration attacks
		return domain.User{}, "", apperrors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return domain.User{}, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSession(domain.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return domain.User{}, "", apperrors.ErrTokenGeneration
	}

	return user, Token(token), nil
}

func (s *AuthService) Profile(userID string) (domain.User, error) {
	return s.userRepository.GetUserByID(userID)
}

// ForgotPassword issues a short-lived reset token and mails a reset link.
// An unknown email is not an error: the caller always gets the same answer,
// only the mail is skipped.
func (s *AuthService) ForgotPassword(email, resetURL string) error {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		s.log.Debug("Password reset requested for unknown email")
		return nil
	}

	token, err := s.tokens.GenerateReset(domain.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return apperrors.ErrTokenGeneration
	}

	link := fmt.Sprintf("%s?token=%s", resetURL, token)
	return s.mailer.Send(mail.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body:    fmt.Sprintf("Follow this link to reset your password (valid 5 minutes): %s", link),
	})
}

// ResetPassword verifies a purpose-tagged reset token and stores a new hash.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	identity, err := s.tokens.VerifyReset(token)
	if err != nil {
		return apperrors.ErrInvalidCredential
	}

	req := auth.ResetPasswordRequest{Token: token, Password: newPassword}
	if err := auth.ValidateResetPassword(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidPassword, err)
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}

	return s.userRepository.UpdatePassword(identity.UserID, hashedPassword)
}
