package models

import "time"

// TaskList represents a shared list of to-dos.
//
// MemberIDs is the stored membership set. Progress, Users and ToDos are not
// stored; they are computed from the current state of the store every time a
// task list is returned to a client.
type TaskList struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	MemberIDs []string  `json:"memberIds"`
	CreatedAt time.Time `json:"createdAt"`

	Progress float64 `json:"progress"`
	Users    []User  `json:"users"`
	ToDos    []ToDo  `json:"todos"`
}
