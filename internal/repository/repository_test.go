package repository

import (
	"database/sql"
	"testing"

	"github.com/dferrandiz/tasklist-be/internal/database"
)

// newTestDB opens a fresh in-memory database. MaxOpenConns is pinned to one
// connection because every in-memory sqlite connection is its own database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepositoryAbsentLookups(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.FindByID("nope")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user != nil {
		t.Error("unknown id should yield a nil user, not an error")
	}

	user, err = repo.FindByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user != nil {
		t.Error("unknown email should yield a nil user")
	}
}

func TestUserRepositoryInsertAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	created, err := repo.Insert("A", "a@x.com", "hashed", nil)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID == "" {
		t.Fatal("inserted user must get an id")
	}

	byEmail, err := repo.FindByEmail("a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != created.ID {
		t.Errorf("FindByEmail returned %+v, want id %s", byEmail, created.ID)
	}
	if byEmail.PasswordHash != "hashed" {
		t.Error("FindByEmail should include the stored password hash")
	}
}

func TestUserRepositoryDuplicateEmailAllowed(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	if _, err := repo.Insert("A", "dup@x.com", "h1", nil); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if _, err := repo.Insert("B", "dup@x.com", "h2", nil); err != nil {
		t.Errorf("duplicate email should not be rejected at this layer: %v", err)
	}
}

func TestUserRepositoryFindByIDsOmitsMisses(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	a, _ := repo.Insert("A", "a@x.com", "h", nil)
	b, _ := repo.Insert("B", "b@x.com", "h", nil)

	users, err := repo.FindByIDs([]string{a.ID, "ghost", b.ID})
	if err != nil {
		t.Fatalf("FindByIDs: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("got %d users, want 2 (unknown ids omitted)", len(users))
	}

	users, err = repo.FindByIDs(nil)
	if err != nil {
		t.Fatalf("FindByIDs(nil): %v", err)
	}
	if len(users) != 0 {
		t.Errorf("empty id set should yield no users, got %d", len(users))
	}
}

func TestTaskListInsertHasCreatorMember(t *testing.T) {
	repo := NewTaskListRepository(newTestDB(t))

	list, err := repo.Insert("Groceries", "user-1")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(list.MemberIDs) != 1 || list.MemberIDs[0] != "user-1" {
		t.Errorf("memberIds = %v, want [user-1]", list.MemberIDs)
	}
	if list.Title != "Groceries" {
		t.Errorf("title = %q", list.Title)
	}
}

func TestTaskListAddMemberIdempotent(t *testing.T) {
	repo := NewTaskListRepository(newTestDB(t))
	list, _ := repo.Insert("Groceries", "user-1")

	if err := repo.AddMember(list.ID, "user-2"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := repo.AddMember(list.ID, "user-2"); err != nil {
		t.Fatalf("second AddMember: %v", err)
	}

	got, err := repo.FindByID(list.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(got.MemberIDs) != 2 {
		t.Errorf("memberIds size = %d after duplicate add, want 2", len(got.MemberIDs))
	}
}

func TestTaskListFindByMember(t *testing.T) {
	repo := NewTaskListRepository(newTestDB(t))

	mine, _ := repo.Insert("Mine", "user-1")
	repo.Insert("Theirs", "user-2")
	shared, _ := repo.Insert("Shared", "user-2")
	repo.AddMember(shared.ID, "user-1")

	lists, err := repo.FindByMember("user-1")
	if err != nil {
		t.Fatalf("FindByMember: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("got %d lists, want 2", len(lists))
	}
	ids := map[string]bool{}
	for _, l := range lists {
		ids[l.ID] = true
	}
	if !ids[mine.ID] || !ids[shared.ID] {
		t.Errorf("FindByMember returned wrong lists: %v", ids)
	}
}

func TestTaskListDelete(t *testing.T) {
	repo := NewTaskListRepository(newTestDB(t))
	list, _ := repo.Insert("Doomed", "user-1")

	deleted, err := repo.Delete(list.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("Delete should report true for an existing list")
	}

	got, err := repo.FindByID(list.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if got != nil {
		t.Error("deleted list should be absent")
	}

	deleted, err = repo.Delete(list.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if deleted {
		t.Error("deleting an unknown id should report false")
	}
}

func TestToDoPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	lists := NewTaskListRepository(db)
	todos := NewToDoRepository(db)

	list, _ := lists.Insert("Groceries", "user-1")
	todo, err := todos.Insert("Milk", list.ID)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if todo.IsCompleted {
		t.Error("new to-do should default to not completed")
	}

	done := true
	if err := todos.Update(todo.ID, nil, &done); err != nil {
		t.Fatalf("Update flag: %v", err)
	}
	got, _ := todos.FindByID(todo.ID)
	if !got.IsCompleted || got.Content != "Milk" {
		t.Errorf("after flag update: %+v", got)
	}

	content := "Oat milk"
	if err := todos.Update(todo.ID, &content, nil); err != nil {
		t.Fatalf("Update content: %v", err)
	}
	got, _ = todos.FindByID(todo.ID)
	if got.Content != "Oat milk" || !got.IsCompleted {
		t.Errorf("after content update: %+v", got)
	}
}

func TestToDoFindByTaskListID(t *testing.T) {
	db := newTestDB(t)
	lists := NewTaskListRepository(db)
	todos := NewToDoRepository(db)

	a, _ := lists.Insert("A", "u")
	b, _ := lists.Insert("B", "u")
	todos.Insert("one", a.ID)
	todos.Insert("two", a.ID)
	todos.Insert("other", b.ID)

	got, err := todos.FindByTaskListID(a.ID)
	if err != nil {
		t.Fatalf("FindByTaskListID: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d to-dos, want 2", len(got))
	}
}

func TestToDoSurvivesParentDeletion(t *testing.T) {
	db := newTestDB(t)
	lists := NewTaskListRepository(db)
	todos := NewToDoRepository(db)

	list, _ := lists.Insert("Gone", "u")
	todo, _ := todos.Insert("orphan", list.ID)
	lists.Delete(list.ID)

	got, err := todos.FindByID(todo.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("to-do should survive deletion of its parent list")
	}
	if got.TaskListID != list.ID {
		t.Error("dangling parent reference should be preserved as stored")
	}
}
