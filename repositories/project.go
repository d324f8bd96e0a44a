//go:generate go run go.uber.org/mock/mockgen -source=project.go -destination=../mocks/mock_project_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"devroom/domain"
	apperrors "devroom/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const projectKeyPrefix = "project:"

type IProjectRepository interface {
	Create(name, creatorID string) (domain.Project, error)
	GetByID(id string) (domain.Project, error)
	ListByMember(userID string) ([]domain.Project, error)
	Save(project domain.Project) error
}

type ProjectRepository struct {
	db *badger.DB
}

func NewProjectRepository(db *badger.DB) IProjectRepository {
	return &ProjectRepository{db: db}
}

// Create persists a new project owned by creatorID. The creator is the
// first member.
func (p *ProjectRepository) Create(name, creatorID string) (domain.Project, error) {
	project := domain.Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatorID: creatorID,
		MemberIDs: []string{creatorID},
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Save(project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (p *ProjectRepository) GetByID(id string) (domain.Project, error) {
	var project domain.Project
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(projectKeyPrefix + id))
		if err != nil {
			return apperrors.ErrProjectNotFound
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &project)
		})
	})
	if err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// ListByMember scans the project keyspace and returns the projects the user
// belongs to. A prefix iteration is enough here: the project space of one
// deployment is small and badger iterates it in key order.
func (p *ProjectRepository) ListByMember(userID string) ([]domain.Project, error) {
	var projects []domain.Project
	err := p.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(projectKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var project domain.Project
				if err := json.Unmarshal(val, &project); err != nil {
					return err
				}
				if project.IsMember(userID) {
					projects = append(projects, project)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return projects, err
}

// Save overwrites the stored project record.
func (p *ProjectRepository) Save(project domain.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(projectKeyPrefix+project.ID), data)
	})
}

// ValidProjectID reports whether id has the identifier format used by the
// project keyspace. The gate relies on it to fail fast before any lookup.
func ValidProjectID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
