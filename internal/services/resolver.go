package services

import (
	"math"

	"github.com/dferrandiz/tasklist-be/internal/models"
	"github.com/dferrandiz/tasklist-be/internal/repository"
)

// ResolverProvider defines the interface for derived-field resolution.
type ResolverProvider interface {
	Progress(taskListID string) (float64, error)
	Members(list models.TaskList) ([]models.User, error)
	ToDos(taskListID string) ([]models.ToDo, error)
	ParentTaskList(todo models.ToDo) (*models.TaskList, error)
	Hydrate(list *models.TaskList) error
}

// Resolver computes the derived and relational fields of task lists and
// to-dos at read time. Nothing is cached: repeated reads recompute from the
// current state of the store.
type Resolver struct {
	users     repository.UserRepositoryProvider
	taskLists repository.TaskListRepositoryProvider
	todos     repository.ToDoRepositoryProvider
}

// NewResolver creates a new Resolver.
func NewResolver(users repository.UserRepositoryProvider, taskLists repository.TaskListRepositoryProvider, todos repository.ToDoRepositoryProvider) *Resolver {
	return &Resolver{users: users, taskLists: taskLists, todos: todos}
}

// Progress returns the completion percentage of a task list, rounded to the
// nearest whole number. A list with no to-dos has progress 0.
func (r *Resolver) Progress(taskListID string) (float64, error) {
	todos, err := r.todos.FindByTaskListID(taskListID)
	if err != nil {
		return 0, err
	}
	if len(todos) == 0 {
		return 0, nil
	}
	completed := 0
	for _, todo := range todos {
		if todo.IsCompleted {
			completed++
		}
	}
	return math.Round(100 * float64(completed) / float64(len(todos))), nil
}

// Members resolves a list's member ids to user records. Ids that no longer
// resolve are silently dropped.
func (r *Resolver) Members(list models.TaskList) ([]models.User, error) {
	users, err := r.users.FindByIDs(list.MemberIDs)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ToDos returns all to-dos belonging to a task list.
func (r *Resolver) ToDos(taskListID string) ([]models.ToDo, error) {
	return r.todos.FindByTaskListID(taskListID)
}

// ParentTaskList resolves a to-do's owning task list. It returns nil when the
// parent has been deleted; a dangling reference is data, not an error.
func (r *Resolver) ParentTaskList(todo models.ToDo) (*models.TaskList, error) {
	return r.taskLists.FindByID(todo.TaskListID)
}

// Hydrate fills the derived fields of a task list in place. Services call it
// on every list before it is returned to a client.
func (r *Resolver) Hydrate(list *models.TaskList) error {
	progress, err := r.Progress(list.ID)
	if err != nil {
		return err
	}
	users, err := r.Members(*list)
	if err != nil {
		return err
	}
	todos, err := r.ToDos(list.ID)
	if err != nil {
		return err
	}
	list.Progress = progress
	list.Users = users
	list.ToDos = todos
	return nil
}
