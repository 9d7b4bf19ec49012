package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
)

// ErrUserNotFound is returned for lookups of absent users.
var ErrUserNotFound = errors.New("user not found")

// UserService manages the global users collection.
type UserService interface {
	List(ctx context.Context) ([]map[string]any, error)
	Get(ctx context.Context, userID string) (map[string]any, error)
	FindByEmail(ctx context.Context, email string) (map[string]any, error)
	Update(ctx context.Context, userID string, req dto.UserUpdateRequest) error
	UpdatePermissions(ctx context.Context, userID string, permissions []string) error
	Create(ctx context.Context, email, password string, roles map[string][]string) (string, error)

	// DisplayName resolves a stored actor identifier (user id or email) to a
	// human-readable name, falling back to the identifier itself.
	DisplayName(ctx context.Context, identifier string) string
}

type userService struct {
	store docstore.Store
}

func NewUserService(store docstore.Store) UserService {
	return &userService{store: store}
}

func (s *userService) List(ctx context.Context) ([]map[string]any, error) {
	docs, err := s.store.List(ctx, docstore.GlobalScope, docstore.CollectionUsers)
	if err != nil {
		return nil, err
	}
	users := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		users = append(users, scrubUser(withID(doc)))
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, userID string) (map[string]any, error) {
	doc, err := s.store.Get(ctx, docstore.GlobalScope, docstore.CollectionUsers, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return scrubUser(withID(*doc)), nil
}

// FindByEmail returns the raw user document (hash included) for auth.
func (s *userService) FindByEmail(ctx context.Context, email string) (map[string]any, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	docs, err := s.store.List(ctx, docstore.GlobalScope, docstore.CollectionUsers)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if stored, _ := doc.Data["email"].(string); strings.EqualFold(stored, email) {
			return withID(doc), nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *userService) Update(ctx context.Context, userID string, req dto.UserUpdateRequest) error {
	exists, err := s.store.Exists(ctx, docstore.GlobalScope, docstore.CollectionUsers, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	data := map[string]any{}
	setIfPresent(data, "firstName", req.FirstName)
	setIfPresent(data, "lastName", req.LastName)
	setIfPresent(data, "language", req.Language)
	setIfPresent(data, "active", req.Active)
	if req.Roles != nil {
		data["roles"] = req.Roles
	}
	return s.store.Merge(ctx, docstore.GlobalScope, docstore.CollectionUsers, userID, data)
}

func (s *userService) UpdatePermissions(ctx context.Context, userID string, permissions []string) error {
	exists, err := s.store.Exists(ctx, docstore.GlobalScope, docstore.CollectionUsers, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return s.store.Merge(ctx, docstore.GlobalScope, docstore.CollectionUsers, userID, map[string]any{
		"permissions": validKeys(permissions),
	})
}

func (s *userService) Create(ctx context.Context, email, password string, roles map[string][]string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", errors.New("email and password are required")
	}
	if _, err := s.FindByEmail(ctx, email); err == nil {
		return "", errors.New("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return s.store.Add(ctx, docstore.GlobalScope, docstore.CollectionUsers, map[string]any{
		"email":        email,
		"passwordHash": string(hash),
		"roles":        roles,
		"active":       true,
	})
}

func (s *userService) DisplayName(ctx context.Context, identifier string) string {
	if identifier == "" {
		return "-"
	}
	doc, err := s.store.Get(ctx, docstore.GlobalScope, docstore.CollectionUsers, identifier)
	if err != nil && strings.Contains(identifier, "@") {
		if byEmail, emailErr := s.FindByEmail(ctx, identifier); emailErr == nil {
			return displayNameOf(byEmail, identifier)
		}
	}
	if err != nil {
		return identifier
	}
	return displayNameOf(doc.Data, identifier)
}

func displayNameOf(user map[string]any, fallback string) string {
	first, _ := user["firstName"].(string)
	last, _ := user["lastName"].(string)
	full := strings.TrimSpace(first + " " + last)
	if full != "" {
		return full
	}
	if email, _ := user["email"].(string); email != "" {
		return email
	}
	return fallback
}

// scrubUser drops credential material from API responses.
func scrubUser(user map[string]any) map[string]any {
	delete(user, "passwordHash")
	return user
}
