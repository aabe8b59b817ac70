// Package repository implements plain keyed storage over the three
// collections (users, task lists, to-dos). No business rules live here:
// lookups that find nothing return a nil record and a nil error, and callers
// decide whether absence is a failure.
package repository

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/dferrandiz/tasklist-be/internal/models"
)

// UserRepositoryProvider defines the interface for user storage.
type UserRepositoryProvider interface {
	Insert(name, email, passwordHash string, avatar *string) (models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByIDs(ids []string) ([]models.User, error)
}

// UserRepository provides keyed storage for user records.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Insert stores a new user. Email uniqueness is not enforced here; duplicate
// signups with the same email are stored as distinct records.
func (r *UserRepository) Insert(name, email, passwordHash string, avatar *string) (models.User, error) {
	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Avatar:       avatar,
		PasswordHash: passwordHash,
	}

	stmt, err := r.db.Prepare("INSERT INTO users(id, name, email, avatar, password_hash) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(user.ID, user.Name, user.Email, user.Avatar, user.PasswordHash); err != nil {
		return models.User{}, err
	}
	return r.mustFind(user.ID)
}

// FindByID retrieves a single user by id. A missing id yields (nil, nil).
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	row := r.db.QueryRow("SELECT id, name, email, avatar, password_hash, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

// FindByEmail retrieves the first user with the given email, including the
// password hash. A missing email yields (nil, nil).
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	row := r.db.QueryRow("SELECT id, name, email, avatar, password_hash, created_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

// FindByIDs retrieves all users matching the given ids. Ids with no matching
// record are silently omitted; result order is unspecified.
func (r *UserRepository) FindByIDs(ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query("SELECT id, name, email, avatar, password_hash, created_at FROM users WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		var avatar sql.NullString
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &avatar, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, err
		}
		if avatar.Valid {
			user.Avatar = &avatar.String
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// mustFind re-reads a user that was just written.
func (r *UserRepository) mustFind(id string) (models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, sql.ErrNoRows
	}
	return *user, nil
}

// scanUser is a helper to scan a single row into a User. sql.ErrNoRows maps
// to an absent record, not an error.
func scanUser(scanner interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	var avatar sql.NullString
	err := scanner.Scan(&user.ID, &user.Name, &user.Email, &avatar, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if avatar.Valid {
		user.Avatar = &avatar.String
	}
	return &user, nil
}
