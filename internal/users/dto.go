package users

import (
	"time"

	"github.com/palengkeproph/palengkeproph-backend/pkg/db/models"
)

// TimestampLayout renders audit timestamps the way the API has always
// serialized them: MM/DD/YYYY HH:MM.
const TimestampLayout = "01/02/2006 15:04"

// UserDTO is the public representation of a user. The password hash never
// appears here.
type UserDTO struct {
	ID         uint    `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	Phone      *string `json:"phone"`
	Role       string  `json:"role"`
	Department *string `json:"department"`
	Status     string  `json:"status"`
	IsActive   bool    `json:"is_active"`
	IsStaff    bool    `json:"is_staff"`
	LastLogin  *string `json:"last_login"`
	DateJoined *string `json:"date_joined"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	joined := u.DateJoined
	return &UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   u.FullName(),
		Phone:      u.Phone,
		Role:       u.Role,
		Department: u.Department,
		Status:     u.Status,
		IsActive:   u.IsActive,
		IsStaff:    u.IsStaff,
		LastLogin:  formatTimestamp(u.LastLogin),
		DateJoined: formatTimestamp(&joined),
	}
}

func FromModels(list []models.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

func formatTimestamp(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(TimestampLayout)
	return &s
}
