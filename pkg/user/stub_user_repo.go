package user

import "context"

type StubUserRepo struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{nextId: 0, data: map[int]User{}}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.data[user.Id] = user
	return user.Id, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id int) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, user := range s.data {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetAllUsers(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.data))
	for _, user := range s.data {
		users = append(users, user)
	}
	return users, nil
}

func (s *StubUserRepo) DeleteUser(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubUserRepo) Cleanup() {
	s.data = map[int]User{}
}
