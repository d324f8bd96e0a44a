//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"devroom/domain"
	apperrors "devroom/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Key layout:
//
//	user:<email> -> JSON user record
//	uid:<id>     -> email (secondary index for lookups by id)
const (
	userKeyPrefix = "user:"
	uidKeyPrefix  = "uid:"
)

type IUserRepository interface {
	CreateUser(email, hashedPassword string) (string, error)
	GetUserByEmail(email string) (domain.User, error)
	GetUserByID(id string) (domain.User, error)
	UpdatePassword(id, hashedPassword string) error
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// userRecord is the stored shape. Kept separate from domain.User so the
// hash is serializable here without ever being exposed upstream.
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUser persists a new account and returns the generated user id.
// Emails are normalized to lower case and must be unique.
func (u *UserRepository) CreateUser(email, hashedPassword string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	record := userRecord{
		ID:           uuid.NewString(),
		Email:        normalized,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal failed: %w", err)
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + normalized)
		if _, err := txn.Get(key); err == nil {
			return apperrors.ErrUserAlreadyExists
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set([]byte(uidKeyPrefix+record.ID), []byte(normalized))
	})
	if err != nil {
		return "", err
	}

	return record.ID, nil
}

func (u *UserRepository) GetUserByEmail(email string) (domain.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var record userRecord
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + normalized))
		if err != nil {
			return apperrors.ErrUserNotFound
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return domain.User{}, err
	}

	return toUser(record), nil
}

func (u *UserRepository) GetUserByID(id string) (domain.User, error) {
	var email string
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(uidKeyPrefix + id))
		if err != nil {
			return apperrors.ErrUserNotFound
		}
		return item.Value(func(val []byte) error {
			email = string(val)
			return nil
		})
	})
	if err != nil {
		return domain.User{}, err
	}
	return u.GetUserByEmail(email)
}

// UpdatePassword overwrites the stored hash for an existing account.
func (u *UserRepository) UpdatePassword(id, hashedPassword string) error {
	user, err := u.GetUserByID(id)
	if err != nil {
		return err
	}

	record := userRecord{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    user.CreatedAt,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return u.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKeyPrefix+user.Email), data)
	})
}

func toUser(record userRecord) domain.User {
	return domain.User{
		ID:           record.ID,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
	}
}
