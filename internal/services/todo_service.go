package services

import (
	"github.com/dferrandiz/tasklist-be/internal/apperrors"
	"github.com/dferrandiz/tasklist-be/internal/models"
	"github.com/dferrandiz/tasklist-be/internal/repository"
)

// ToDoServiceProvider defines the interface for to-do services.
type ToDoServiceProvider interface {
	Create(callerID, content, taskListID string) (models.ToDo, error)
	Update(callerID, id string, content *string, isCompleted *bool) (models.ToDo, error)
	Delete(callerID, id string) error
}

// ToDoService provides the gated to-do operations. As with task lists, any
// authenticated user may mutate any to-do by id.
type ToDoService struct {
	todos     repository.ToDoRepositoryProvider
	taskLists repository.TaskListRepositoryProvider
}

// NewToDoService creates a new ToDoService.
func NewToDoService(todos repository.ToDoRepositoryProvider, taskLists repository.TaskListRepositoryProvider) *ToDoService {
	return &ToDoService{todos: todos, taskLists: taskLists}
}

// Create adds a to-do to an existing task list. The parent list must exist at
// creation time; it is not re-validated on later reads.
func (s *ToDoService) Create(callerID, content, taskListID string) (models.ToDo, error) {
	if callerID == "" {
		return models.ToDo{}, apperrors.ErrUnauthenticated
	}

	list, err := s.taskLists.FindByID(taskListID)
	if err != nil {
		return models.ToDo{}, err
	}
	if list == nil {
		return models.ToDo{}, apperrors.ErrNotFound
	}

	return s.todos.Insert(content, taskListID)
}

// Update applies a partial update to a to-do's content and completion flag.
func (s *ToDoService) Update(callerID, id string, content *string, isCompleted *bool) (models.ToDo, error) {
	if callerID == "" {
		return models.ToDo{}, apperrors.ErrUnauthenticated
	}

	existing, err := s.todos.FindByID(id)
	if err != nil {
		return models.ToDo{}, err
	}
	if existing == nil {
		return models.ToDo{}, apperrors.ErrNotFound
	}

	if err := s.todos.Update(id, content, isCompleted); err != nil {
		return models.ToDo{}, err
	}

	updated, err := s.todos.FindByID(id)
	if err != nil {
		return models.ToDo{}, err
	}
	if updated == nil {
		return models.ToDo{}, apperrors.ErrNotFound
	}
	return *updated, nil
}

// Delete removes a to-do by id.
func (s *ToDoService) Delete(callerID, id string) error {
	if callerID == "" {
		return apperrors.ErrUnauthenticated
	}

	deleted, err := s.todos.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrNotFound
	}
	return nil
}
