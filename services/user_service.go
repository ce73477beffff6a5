package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gospelcms/models"
	"gospelcms/storage"
)

// UserService keeps the users record set in the same storage as the content
// sets. Passwords are stored as bcrypt hashes.
type UserService struct {
	mu    sync.RWMutex
	store storage.Storage
}

func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, &ValidationError{Field: "email"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadSet[models.User](s.store, usersKey)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, req.Email) {
			return nil, &ValidationError{Field: "email"}
		}
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	users = append(users, user)
	if err := saveSet(s.store, usersKey, users); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserService) GetUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadSet[models.User](s.store, usersKey)
}

func (s *UserService) GetUserByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := loadSet[models.User](s.store, usersKey)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := loadSet[models.User](s.store, usersKey)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// Authenticate verifies the credentials and returns the user. Unknown email
// and wrong password both map to ErrNotFound so callers cannot tell which.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrNotFound
	}
	return user, nil
}

// DeleteUser removes the user if present. Deleting a missing id is a no-op,
// matching the post delete semantics.
func (s *UserService) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadSet[models.User](s.store, usersKey)
	if err != nil {
		return err
	}

	kept := users[:0]
	for _, user := range users {
		if user.ID != id {
			kept = append(kept, user)
		}
	}
	if len(kept) == len(users) {
		return nil
	}

	return saveSet(s.store, usersKey, kept)
}

// Bootstrap creates the initial admin account when the user set is empty.
func (s *UserService) Bootstrap(email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	users, err := s.GetUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	_, err = s.CreateUser(&models.CreateUserRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	if err != nil {
		return err
	}

	log.Printf("Bootstrapped admin account for %s", email)
	return nil
}
