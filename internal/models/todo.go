package models

import "time"

// ToDo represents a single item within a task list. TaskListID is set at
// creation and never changes afterwards.
type ToDo struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	IsCompleted bool      `json:"isCompleted"`
	TaskListID  string    `json:"taskListId"`
	CreatedAt   time.Time `json:"createdAt"`
}
