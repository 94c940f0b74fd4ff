package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/database"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) error
}

type RepoImpl struct {
	db database.DB
}

func NewUserRepo(db database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO app_user (uid, username, full_name) VALUES ($1, $2, $3) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query, user.Uid, user.Username, user.FullName).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, full_name FROM app_user WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, full_name FROM app_user WHERE uid = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, uid))
}

func (r *RepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, full_name FROM app_user ORDER BY username`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.Id, &user.Uid, &user.Username, &user.FullName); err != nil {
			err := fmt.Errorf("could not scan user: %w", err)
			log.Error(err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return users, nil
}

func (r *RepoImpl) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM app_user WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *RepoImpl) scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.Id, &user.Uid, &user.Username, &user.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}
