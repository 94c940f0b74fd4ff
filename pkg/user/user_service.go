package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetUser(ctx, userId)
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	userId, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, id int) error {
	return s.repo.DeleteUser(ctx, id)
}
