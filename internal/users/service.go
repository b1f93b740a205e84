package users

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/palengkeproph/palengkeproph-backend/pkg/config"
	"github.com/palengkeproph/palengkeproph-backend/pkg/db/models"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
	"github.com/palengkeproph/palengkeproph-backend/pkg/security"
)

const notFoundDetail = "Not found."

// UpdateUserRequest carries a partial field merge. Nil pointers mean "leave
// unchanged"; id, last_login and date_joined are not updatable.
type UpdateUserRequest struct {
	Username    *string `json:"username" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	Role        *string `json:"role"`
	Department  *string `json:"department"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// Service exposes the user resource operations backed by the repository.
type Service interface {
	List(ctx context.Context) ([]*UserDTO, error)
	Get(ctx context.Context, id uint) (*UserDTO, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest) (*UserDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

func NewService(repo *Repository, passwordCfg config.PasswordConfig) Service {
	return &service{repo: repo, passwordCfg: passwordCfg}
}

// List returns every user's public representation.
func (s *service) List(ctx context.Context) ([]*UserDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return FromModels(list), nil
}

// Get returns the user with the given id.
func (s *service) Get(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

// Update applies a partial merge and returns the updated representation.
// A password in the payload is re-hashed, never compared against the old one.
func (s *service) Update(ctx context.Context, id uint, req UpdateUserRequest) (*UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, pkgerrors.FieldError("username", "This field may not be blank.")
		}
		if username != user.Username {
			taken, err := s.repo.UsernameTaken(ctx, username, id)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
			}
			if taken {
				return nil, pkgerrors.FieldError("username", "Username already exists.")
			}
			fields["username"] = username
		}
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, pkgerrors.FieldError("email", "This field may not be blank.")
		}
		if email != user.Email {
			taken, err := s.repo.EmailTaken(ctx, email, id)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
			}
			if taken {
				return nil, pkgerrors.FieldError("email", "Email already exists.")
			}
			fields["email"] = email
		}
	}
	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		fields["password_hash"] = hash
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.IsStaff != nil {
		fields["is_staff"] = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		fields["is_superuser"] = *req.IsSuperuser
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

// Delete removes a user record.
func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, notFoundDetail)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundDetail)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}
