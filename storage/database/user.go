package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(email string) error {
	var exists bool
	err := repo.db.Get(&exists, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	err := repo.db.QueryRowx(
		`INSERT INTO users (name, email, type, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		usr.Name, usr.Email, usr.Type, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt,
	).Scan(&usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var users []user.User
	if err := repo.db.Select(&users, "SELECT * FROM users ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	var usr user.User
	if err := repo.db.Get(&usr, "SELECT * FROM users WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by id")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	res, err := repo.db.Exec(
		`UPDATE users SET name = $1, email = $2, type = $3, password_hash = $4, updated_at = $5
		 WHERE id = $6`,
		usr.Name, usr.Email, usr.Type, usr.PasswordHash, usr.UpdatedAt, usr.ID,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	var usr user.User
	if err := repo.db.Get(&usr, "SELECT * FROM users WHERE email = $1", email); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by email")
	}
	return usr, nil
}
