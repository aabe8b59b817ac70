package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dferrandiz/tasklist-be/internal/database"
	"github.com/dferrandiz/tasklist-be/internal/models"
	"github.com/dferrandiz/tasklist-be/internal/repository"
	"github.com/dferrandiz/tasklist-be/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	taskListRepo := repository.NewTaskListRepository(db)
	todoRepo := repository.NewToDoRepository(db)
	resolver := services.NewResolver(userRepo, taskListRepo, todoRepo)

	router := NewRouter(
		services.NewUserService(userRepo),
		services.NewTaskListService(taskListRepo, resolver),
		services.NewToDoService(todoRepo, taskListRepo),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})
	return srv
}

// doJSON sends a JSON request with an optional bearer token and decodes the
// response body into out when it is non-nil.
func doJSON(t *testing.T, method, url, token string, body, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding response of %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestEndToEndFlow(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1"

	// Signup
	var signedUp models.AuthUser
	status := doJSON(t, http.MethodPost, base+"/auth/signup", "",
		map[string]string{"email": "a@x.com", "password": "pw", "name": "A"}, &signedUp)
	if status != http.StatusCreated {
		t.Fatalf("signup status = %d", status)
	}
	if signedUp.Token == "" || signedUp.User.ID == "" {
		t.Fatal("signup must return a user and a token")
	}

	// Signin with the same credentials
	var signedIn models.AuthUser
	status = doJSON(t, http.MethodPost, base+"/auth/signin", "",
		map[string]string{"email": "a@x.com", "password": "pw"}, &signedIn)
	if status != http.StatusOK {
		t.Fatalf("signin status = %d", status)
	}
	if signedIn.User.ID != signedUp.User.ID {
		t.Error("signin should return the same user")
	}
	token := signedIn.Token

	// Create a task list
	var list models.TaskList
	status = doJSON(t, http.MethodPost, base+"/tasklists", token,
		map[string]string{"title": "Groceries"}, &list)
	if status != http.StatusCreated {
		t.Fatalf("create list status = %d", status)
	}
	if len(list.MemberIDs) != 1 || list.MemberIDs[0] != signedUp.User.ID {
		t.Errorf("memberIds = %v, want sole creator", list.MemberIDs)
	}
	if list.Progress != 0 || len(list.ToDos) != 0 {
		t.Errorf("new list: progress = %v, todos = %v", list.Progress, list.ToDos)
	}

	// Add a to-do and complete it
	var todo models.ToDo
	status = doJSON(t, http.MethodPost, fmt.Sprintf("%s/tasklists/%s/todos", base, list.ID), token,
		map[string]string{"content": "Milk"}, &todo)
	if status != http.StatusCreated {
		t.Fatalf("create to-do status = %d", status)
	}

	status = doJSON(t, http.MethodPut, base+"/todos/"+todo.ID, token,
		map[string]interface{}{"isCompleted": true}, &todo)
	if status != http.StatusOK {
		t.Fatalf("update to-do status = %d", status)
	}
	if !todo.IsCompleted {
		t.Error("to-do should be completed")
	}

	// Progress is recomputed on read
	var got models.TaskList
	status = doJSON(t, http.MethodGet, base+"/tasklists/"+list.ID, token, nil, &got)
	if status != http.StatusOK {
		t.Fatalf("get list status = %d", status)
	}
	if got.Progress != 100 {
		t.Errorf("progress = %v, want 100", got.Progress)
	}
}

func TestGatedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1"

	if status := doJSON(t, http.MethodGet, base+"/tasklists", "", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", status)
	}
	if status := doJSON(t, http.MethodGet, base+"/tasklists", "bogus-token", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("bogus token: status = %d, want 401", status)
	}
	if status := doJSON(t, http.MethodPost, base+"/tasklists", "", map[string]string{"title": "x"}, nil); status != http.StatusUnauthorized {
		t.Errorf("unauthenticated create: status = %d, want 401", status)
	}
}

func TestUnknownTaskListIs404(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1"

	var au models.AuthUser
	doJSON(t, http.MethodPost, base+"/auth/signup", "",
		map[string]string{"email": "a@x.com", "password": "pw", "name": "A"}, &au)

	if status := doJSON(t, http.MethodGet, base+"/tasklists/no-such-id", au.Token, nil, nil); status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestSigninFailureIs401(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1"

	doJSON(t, http.MethodPost, base+"/auth/signup", "",
		map[string]string{"email": "a@x.com", "password": "pw", "name": "A"}, nil)

	if status := doJSON(t, http.MethodPost, base+"/auth/signin", "",
		map[string]string{"email": "a@x.com", "password": "wrong"}, nil); status != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", status)
	}
	if status := doJSON(t, http.MethodPost, base+"/auth/signin", "",
		map[string]string{"email": "ghost@x.com", "password": "pw"}, nil); status != http.StatusUnauthorized {
		t.Errorf("unknown email: status = %d, want 401", status)
	}
}
