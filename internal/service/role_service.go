package service

import (
	"context"
	"errors"

	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/permission"
)

// ErrRoleNotFound is returned for lookups of absent roles.
var ErrRoleNotFound = errors.New("role not found")

// RoleService manages the per-hotel role documents and materializes them into
// the resolver the route guards consult.
type RoleService interface {
	List(ctx context.Context, hotelUID string) ([]map[string]any, error)
	Create(ctx context.Context, hotelUID string, req dto.RoleRequest) (string, error)
	Update(ctx context.Context, hotelUID, roleID string, req dto.RoleRequest) error
	Delete(ctx context.Context, hotelUID, roleID string) error

	// ResolverFor builds a role resolver from the hotel's role documents,
	// falling back to the static default table for roles the hotel has not
	// customized.
	ResolverFor(ctx context.Context, hotelUID string) (permission.Resolver, error)
}

type roleService struct {
	store docstore.Store
}

func NewRoleService(store docstore.Store) RoleService {
	return &roleService{store: store}
}

func (s *roleService) List(ctx context.Context, hotelUID string) ([]map[string]any, error) {
	docs, err := s.store.List(ctx, hotelUID, docstore.CollectionRoles)
	if err != nil {
		return nil, err
	}
	roles := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		roles = append(roles, withID(doc))
	}
	return roles, nil
}

func (s *roleService) Create(ctx context.Context, hotelUID string, req dto.RoleRequest) (string, error) {
	if req.Name == nil || *req.Name == "" {
		return "", errors.New("role name is required")
	}
	return s.store.Add(ctx, hotelUID, docstore.CollectionRoles, map[string]any{
		"name":        *req.Name,
		"permissions": validKeys(req.Permissions),
	})
}

func (s *roleService) Update(ctx context.Context, hotelUID, roleID string, req dto.RoleRequest) error {
	exists, err := s.store.Exists(ctx, hotelUID, docstore.CollectionRoles, roleID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRoleNotFound
	}
	data := map[string]any{}
	setIfPresent(data, "name", req.Name)
	if req.Permissions != nil {
		data["permissions"] = validKeys(req.Permissions)
	}
	return s.store.Merge(ctx, hotelUID, docstore.CollectionRoles, roleID, data)
}

func (s *roleService) Delete(ctx context.Context, hotelUID, roleID string) error {
	return s.store.Delete(ctx, hotelUID, docstore.CollectionRoles, roleID)
}

func (s *roleService) ResolverFor(ctx context.Context, hotelUID string) (permission.Resolver, error) {
	docs, err := s.store.List(ctx, hotelUID, docstore.CollectionRoles)
	if err != nil {
		return nil, err
	}
	roleDocs := make([]permission.RoleDoc, 0, len(docs))
	for _, doc := range docs {
		name, _ := doc.Data["name"].(string)
		roleDocs = append(roleDocs, permission.RoleDoc{
			ID:          doc.ID,
			Name:        name,
			Permissions: stringSlice(doc.Data["permissions"]),
		})
	}
	return permission.NewRoleResolver(permission.BuildRoleTable(roleDocs)), nil
}

// validKeys keeps only well-formed feature.action keys, preserving order.
func validKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, _, ok := permission.SplitKey(key); ok {
			out = append(out, key)
		}
	}
	return out
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
