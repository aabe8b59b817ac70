package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/dferrandiz/tasklist-be/internal/models"
)

// ToDoRepositoryProvider defines the interface for to-do storage.
type ToDoRepositoryProvider interface {
	Insert(content, taskListID string) (models.ToDo, error)
	FindByID(id string) (*models.ToDo, error)
	FindByTaskListID(taskListID string) ([]models.ToDo, error)
	Update(id string, content *string, isCompleted *bool) error
	Delete(id string) (bool, error)
}

// ToDoRepository provides keyed storage for to-do items.
type ToDoRepository struct {
	db *sql.DB
}

// NewToDoRepository creates a new ToDoRepository.
func NewToDoRepository(db *sql.DB) *ToDoRepository {
	return &ToDoRepository{db: db}
}

// Insert stores a new to-do, not yet completed.
func (r *ToDoRepository) Insert(content, taskListID string) (models.ToDo, error) {
	id := uuid.New().String()

	stmt, err := r.db.Prepare("INSERT INTO todos(id, content, is_completed, task_list_id) VALUES(?, ?, FALSE, ?)")
	if err != nil {
		return models.ToDo{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(id, content, taskListID); err != nil {
		return models.ToDo{}, err
	}

	todo, err := r.FindByID(id)
	if err != nil {
		return models.ToDo{}, err
	}
	if todo == nil {
		return models.ToDo{}, sql.ErrNoRows
	}
	return *todo, nil
}

// FindByID retrieves a single to-do by id. A missing id yields (nil, nil).
func (r *ToDoRepository) FindByID(id string) (*models.ToDo, error) {
	row := r.db.QueryRow("SELECT id, content, is_completed, task_list_id, created_at FROM todos WHERE id = ?", id)
	var todo models.ToDo
	err := row.Scan(&todo.ID, &todo.Content, &todo.IsCompleted, &todo.TaskListID, &todo.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

// FindByTaskListID retrieves all to-dos belonging to a task list.
func (r *ToDoRepository) FindByTaskListID(taskListID string) ([]models.ToDo, error) {
	rows, err := r.db.Query("SELECT id, content, is_completed, task_list_id, created_at FROM todos WHERE task_list_id = ? ORDER BY created_at", taskListID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.ToDo{}
	for rows.Next() {
		var todo models.ToDo
		if err := rows.Scan(&todo.ID, &todo.Content, &todo.IsCompleted, &todo.TaskListID, &todo.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// Update applies a partial update: only non-nil fields are written. The
// owning task list of a to-do is immutable and cannot be changed here.
func (r *ToDoRepository) Update(id string, content *string, isCompleted *bool) error {
	if content != nil && isCompleted != nil {
		_, err := r.db.Exec("UPDATE todos SET content = ?, is_completed = ? WHERE id = ?", *content, *isCompleted, id)
		return err
	}
	if content != nil {
		_, err := r.db.Exec("UPDATE todos SET content = ? WHERE id = ?", *content, id)
		return err
	}
	if isCompleted != nil {
		_, err := r.db.Exec("UPDATE todos SET is_completed = ? WHERE id = ?", *isCompleted, id)
		return err
	}
	return nil
}

// Delete removes a to-do and reports whether a row was actually deleted.
func (r *ToDoRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
