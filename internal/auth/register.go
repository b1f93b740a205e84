package auth

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/palengkeproph/palengkeproph-backend/internal/users"
	"github.com/palengkeproph/palengkeproph-backend/pkg/config"
	"github.com/palengkeproph/palengkeproph-backend/pkg/db"
	"github.com/palengkeproph/palengkeproph-backend/pkg/db/models"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
	"github.com/palengkeproph/palengkeproph-backend/pkg/security"
)

// RegisterRequest is the untrusted registration payload.
type RegisterRequest struct {
	Username   string  `json:"username" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Phone      *string `json:"phone"`
	Role       string  `json:"role"`
	Department *string `json:"department"`
	Status     string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// RegisterService persists new users.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             txRunner
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          txRunner
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{db: params.DB, passwordCfg: params.PasswordConfig}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" {
		return nil, pkgerrors.FieldError("username", "This field is required.")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	status := req.Status
	if status == "" {
		status = models.UserStatusActive
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         req.Role,
		Department:   req.Department,
		Status:       status,
		IsActive:     true,
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		taken, err := repo.UsernameTaken(ctx, username, 0)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}
		if taken {
			return pkgerrors.FieldError("username", "Username already exists.")
		}

		taken, err = repo.EmailTaken(ctx, email, 0)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
		if taken {
			return pkgerrors.FieldError("email", "Email already exists.")
		}

		if err := repo.Create(ctx, user); err != nil {
			// A concurrent registration can slip past the checks above;
			// the unique constraints report it here instead.
			if db.IsUniqueViolation(err, "username") {
				return pkgerrors.FieldError("username", "Username already exists.")
			}
			if db.IsUniqueViolation(err, "email") {
				return pkgerrors.FieldError("email", "Email already exists.")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users.FromModel(user), nil
}
