package service

import (
	"context"
	"fmt"
	"time"

	"github.com/victorexecutive/ops-service/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UserListItem struct {
	UserDTO
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns the full roster. Password hashes never serialize; the
// domain type hides them from JSON.
func (s *UserService) ListUsers(ctx context.Context) ([]UserListItem, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		item := UserListItem{
			UserDTO: UserDTO{
				ID:       u.ID,
				Email:    u.Email,
				FullName: u.FullName,
				Role:     u.Role,
			},
			Status: string(u.Status),
		}
		if u.LastLoginAt != nil {
			t := u.LastLoginAt.UTC()
			item.LastLoginAt = &t
		}
		items = append(items, item)
	}

	return items, nil
}
