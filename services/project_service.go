package services

import (
	"fmt"

	"devroom/domain"
	apperrors "devroom/errors"
	"devroom/repositories"

	"github.com/samber/lo"
)

type IProjectService interface {
	Create(name, creatorID string) (domain.Project, error)
	ListForUser(userID string) ([]domain.Project, error)
	Get(projectID string) (domain.Project, error)
	AddUsers(projectID, callerID string, userIDs []string) (domain.Project, error)
	RemoveUser(projectID, callerID, userID string) (domain.Project, error)
}

type ProjectService struct {
	projectRepository repositories.IProjectRepository
	userRepository    repositories.IUserRepository
}

func NewProjectService(projects repositories.IProjectRepository,
	users repositories.IUserRepository) IProjectService {
	return &ProjectService{projectRepository: projects, userRepository: users}
}

func (s *ProjectService) Create(name, creatorID string) (domain.Project, error) {
	if name == "" || creatorID == "" {
		return domain.Project{}, fmt.Errorf("name and creator id are required")
	}
	return s.projectRepository.Create(name, creatorID)
}

func (s *ProjectService) ListForUser(userID string) ([]domain.Project, error) {
	return s.projectRepository.ListByMember(userID)
}

func (s *ProjectService) Get(projectID string) (domain.Project, error) {
	if !repositories.ValidProjectID(projectID) {
		return domain.Project{}, apperrors.ErrInvalidProject
	}
	return s.projectRepository.GetByID(projectID)
}

// AddUsers adds members to a project. Only the creator may do this.
// Already-present ids are skipped; any unknown id fails the whole call.
func (s *ProjectService) AddUsers(projectID, callerID string, userIDs []string) (domain.Project, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return domain.Project{}, err
	}

	if project.CreatorID != callerID {
		return domain.Project{}, apperrors.ErrNotProjectCreator
	}

	var toAdd []string
	for _, id := range lo.Uniq(userIDs) {
		if lo.Contains(project.MemberIDs, id) {
			continue
		}
		if _, err := s.userRepository.GetUserByID(id); err != nil {
			return domain.Project{}, fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, id)
		}
		toAdd = append(toAdd, id)
	}

	if len(toAdd) == 0 {
		return domain.Project{}, apperrors.ErrNothingToAdd
	}

	project.MemberIDs = append(project.MemberIDs, toAdd...)
	if err := s.projectRepository.Save(project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// RemoveUser removes a member. Only the creator may do this, and the member
// must currently belong to the project.
func (s *ProjectService) RemoveUser(projectID, callerID, userID string) (domain.Project, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return domain.Project{}, err
	}

	if project.CreatorID != callerID {
		return domain.Project{}, apperrors.ErrNotProjectCreator
	}

	found := false
	members := project.MemberIDs[:0]
	for _, id := range project.MemberIDs {
		if id == userID {
			found = true
			continue
		}
		members = append(members, id)
	}
	if !found {
		return domain.Project{}, apperrors.ErrUserNotInProject
	}

	project.MemberIDs = members
	if err := s.projectRepository.Save(project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}
