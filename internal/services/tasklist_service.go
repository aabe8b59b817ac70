package services

import (
	"github.com/dferrandiz/tasklist-be/internal/apperrors"
	"github.com/dferrandiz/tasklist-be/internal/models"
	"github.com/dferrandiz/tasklist-be/internal/repository"
)

// TaskListServiceProvider defines the interface for task-list services.
type TaskListServiceProvider interface {
	MyTaskLists(callerID string) ([]models.TaskList, error)
	Get(callerID, id string) (models.TaskList, error)
	Create(callerID, title string) (models.TaskList, error)
	UpdateTitle(callerID, id, title string) (models.TaskList, error)
	Delete(callerID, id string) error
	AddMember(callerID, listID, userID string) (models.TaskList, error)
}

// TaskListService provides the gated task-list operations. Every operation
// requires an authenticated caller; beyond that there is no per-list
// ownership check, so any authenticated user may read or mutate any list
// whose id they know. Only MyTaskLists filters by membership.
type TaskListService struct {
	taskLists repository.TaskListRepositoryProvider
	resolver  ResolverProvider
}

// NewTaskListService creates a new TaskListService.
func NewTaskListService(taskLists repository.TaskListRepositoryProvider, resolver ResolverProvider) *TaskListService {
	return &TaskListService{taskLists: taskLists, resolver: resolver}
}

// MyTaskLists returns the task lists the caller is a member of, with derived
// fields filled in.
func (s *TaskListService) MyTaskLists(callerID string) ([]models.TaskList, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	lists, err := s.taskLists.FindByMember(callerID)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if err := s.resolver.Hydrate(&lists[i]); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// Get retrieves a task list by id. Membership is not required.
func (s *TaskListService) Get(callerID, id string) (models.TaskList, error) {
	if callerID == "" {
		return models.TaskList{}, apperrors.ErrUnauthenticated
	}

	list, err := s.taskLists.FindByID(id)
	if err != nil {
		return models.TaskList{}, err
	}
	if list == nil {
		return models.TaskList{}, apperrors.ErrNotFound
	}
	if err := s.resolver.Hydrate(list); err != nil {
		return models.TaskList{}, err
	}
	return *list, nil
}

// Create creates a task list with the caller as its sole initial member.
func (s *TaskListService) Create(callerID, title string) (models.TaskList, error) {
	if callerID == "" {
		return models.TaskList{}, apperrors.ErrUnauthenticated
	}

	list, err := s.taskLists.Insert(title, callerID)
	if err != nil {
		return models.TaskList{}, err
	}
	if err := s.resolver.Hydrate(&list); err != nil {
		return models.TaskList{}, err
	}
	return list, nil
}

// UpdateTitle renames an existing task list.
func (s *TaskListService) UpdateTitle(callerID, id, title string) (models.TaskList, error) {
	if callerID == "" {
		return models.TaskList{}, apperrors.ErrUnauthenticated
	}

	existing, err := s.taskLists.FindByID(id)
	if err != nil {
		return models.TaskList{}, err
	}
	if existing == nil {
		return models.TaskList{}, apperrors.ErrNotFound
	}

	if err := s.taskLists.UpdateTitle(id, title); err != nil {
		return models.TaskList{}, err
	}
	return s.Get(callerID, id)
}

// Delete removes a task list by id.
func (s *TaskListService) Delete(callerID, id string) error {
	if callerID == "" {
		return apperrors.ErrUnauthenticated
	}

	deleted, err := s.taskLists.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddMember adds a user to a task list's member set. Adding an existing
// member is a no-op; the user id is not checked for existence, and an id that
// never resolves is simply dropped by the member resolver on read.
func (s *TaskListService) AddMember(callerID, listID, userID string) (models.TaskList, error) {
	if callerID == "" {
		return models.TaskList{}, apperrors.ErrUnauthenticated
	}

	existing, err := s.taskLists.FindByID(listID)
	if err != nil {
		return models.TaskList{}, err
	}
	if existing == nil {
		return models.TaskList{}, apperrors.ErrNotFound
	}

	if err := s.taskLists.AddMember(listID, userID); err != nil {
		return models.TaskList{}, err
	}
	return s.Get(callerID, listID)
}
