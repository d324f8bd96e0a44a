package repositories

import (
	"testing"

	apperrors "devroom/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_Create(t *testing.T) {
	req := require.New(t)
	repo := NewProjectRepository(newTestDB(t))

	project, err := repo.Create("backend refactor", "creator-1")

	req.NoError(err)
	req.NotEmpty(project.ID)
	req.True(ValidProjectID(project.ID))
	req.Equal("backend refactor", project.Name)
	req.Equal("creator-1", project.CreatorID)
	// The creator is the first member
	req.Equal([]string{"creator-1"}, project.MemberIDs)

	stored, err := repo.GetByID(project.ID)
	req.NoError(err)
	req.Equal(project.ID, stored.ID)
}

func TestProjectRepository_GetByID(t *testing.T) {
	req := require.New(t)
	repo := NewProjectRepository(newTestDB(t))

	_, err := repo.GetByID(uuid.NewString())

	req.ErrorIs(err, apperrors.ErrProjectNotFound)
}

func TestProjectRepository_ListByMember(t *testing.T) {
	req := require.New(t)
	repo := NewProjectRepository(newTestDB(t))

	mine, err := repo.Create("mine", "me")
	req.NoError(err)
	_, err = repo.Create("theirs", "someone-else")
	req.NoError(err)

	shared, err := repo.Create("shared", "someone-else")
	req.NoError(err)
	shared.MemberIDs = append(shared.MemberIDs, "me")
	req.NoError(repo.Save(shared))

	projects, err := repo.ListByMember("me")
	req.NoError(err)
	req.Len(projects, 2)

	ids := []string{projects[0].ID, projects[1].ID}
	req.Contains(ids, mine.ID)
	req.Contains(ids, shared.ID)
}

func TestValidProjectID(t *testing.T) {
	req := require.New(t)

	req.True(ValidProjectID(uuid.NewString()))
	req.False(ValidProjectID("not-a-uuid"))
	req.False(ValidProjectID(""))
}
