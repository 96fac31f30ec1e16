package identity

import (
	"context"
	"errors"
	"strings"

	identityerrors "go-hrm/internal/identity/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=identity_repo.go -destination=mock/identity_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "user_email = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(u.Email)
	return mapRepositoryError(r.db.WithContext(ctx).Create(u).Error)
}

func (r *repository) Update(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(u.Email)
	return mapRepositoryError(r.db.WithContext(ctx).Save(u).Error)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return identityerrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_hr_users_email" {
		return identityerrors.ErrUserAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_hr_users_email") {
		return identityerrors.ErrUserAlreadyExists
	}

	return err
}
