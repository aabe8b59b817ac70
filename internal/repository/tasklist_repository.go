package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/dferrandiz/tasklist-be/internal/models"
)

// TaskListRepositoryProvider defines the interface for task-list storage.
type TaskListRepositoryProvider interface {
	Insert(title, creatorID string) (models.TaskList, error)
	FindByID(id string) (*models.TaskList, error)
	FindByMember(userID string) ([]models.TaskList, error)
	UpdateTitle(id, title string) error
	Delete(id string) (bool, error)
	AddMember(id, userID string) error
}

// TaskListRepository provides keyed storage for task lists and their
// membership sets.
type TaskListRepository struct {
	db *sql.DB
}

// NewTaskListRepository creates a new TaskListRepository.
func NewTaskListRepository(db *sql.DB) *TaskListRepository {
	return &TaskListRepository{db: db}
}

// Insert stores a new task list with the creator as its sole member. The list
// row and the membership row are written in one transaction so the list is
// never visible with an empty member set.
func (r *TaskListRepository) Insert(title, creatorID string) (models.TaskList, error) {
	id := uuid.New().String()

	tx, err := r.db.Begin()
	if err != nil {
		return models.TaskList{}, err
	}
	if _, err := tx.Exec("INSERT INTO task_lists(id, title) VALUES(?, ?)", id, title); err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}
	if _, err := tx.Exec("INSERT INTO task_list_members(task_list_id, user_id) VALUES(?, ?)", id, creatorID); err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.TaskList{}, err
	}

	list, err := r.FindByID(id)
	if err != nil {
		return models.TaskList{}, err
	}
	if list == nil {
		return models.TaskList{}, sql.ErrNoRows
	}
	return *list, nil
}

// FindByID retrieves a single task list with its member id set. A missing id
// yields (nil, nil).
func (r *TaskListRepository) FindByID(id string) (*models.TaskList, error) {
	row := r.db.QueryRow("SELECT id, title, created_at FROM task_lists WHERE id = ?", id)
	var list models.TaskList
	err := row.Scan(&list.ID, &list.Title, &list.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	members, err := r.memberIDs(id)
	if err != nil {
		return nil, err
	}
	list.MemberIDs = members
	return &list, nil
}

// FindByMember retrieves all task lists whose member set contains the given
// user id.
func (r *TaskListRepository) FindByMember(userID string) ([]models.TaskList, error) {
	rows, err := r.db.Query(`
		SELECT l.id, l.title, l.created_at
		FROM task_lists l
		JOIN task_list_members m ON m.task_list_id = l.id
		WHERE m.user_id = ?
		ORDER BY l.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.TaskList{}
	for rows.Next() {
		var list models.TaskList
		if err := rows.Scan(&list.ID, &list.Title, &list.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		members, err := r.memberIDs(lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].MemberIDs = members
	}
	return lists, nil
}

// UpdateTitle sets a new title on an existing task list.
func (r *TaskListRepository) UpdateTitle(id, title string) error {
	_, err := r.db.Exec("UPDATE task_lists SET title = ? WHERE id = ?", title, id)
	return err
}

// Delete removes a task list and its membership rows. It reports whether a
// list row was actually deleted. To-dos of the list are left in place; their
// parent reference dangles from then on.
func (r *TaskListRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec("DELETE FROM task_lists WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	_, err = r.db.Exec("DELETE FROM task_list_members WHERE task_list_id = ?", id)
	return true, err
}

// AddMember adds a user id to a list's member set. Adding an existing member
// is a no-op.
func (r *TaskListRepository) AddMember(id, userID string) error {
	_, err := r.db.Exec("INSERT OR IGNORE INTO task_list_members(task_list_id, user_id) VALUES(?, ?)", id, userID)
	return err
}

// memberIDs loads the member id set of a list.
func (r *TaskListRepository) memberIDs(listID string) ([]string, error) {
	rows, err := r.db.Query("SELECT user_id FROM task_list_members WHERE task_list_id = ?", listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
