package auth

import (
	"context"
	"fmt"
	"strings"

	"souqah-backend/internal/models"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/constants"
	"souqah-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service handles registration and credential checks. Session plumbing lives
// in the middleware; this package only yields the user to put in it.
type Service struct {
	DB *gorm.DB
}

// RegisterInput is the signup request body.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register validates the input, hashes the password and creates the account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPhone(in.Phone) {
		return nil, ErrInvalidPhone
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         constants.RoleRegular,
		Status:       constants.UserActive,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return user, nil
}

// Login finds the user by email and verifies the password. Suspended accounts
// may log in (read-only moderation state); banned accounts may not.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	if u.Status == constants.UserBanned {
		return nil, ErrAccountBanned
	}
	return &u, nil
}

// SessionShape is the object stored in the session and returned by /me.
type SessionShape struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// VerifyUser validates the session user payload and returns the /me shape.
func VerifyUser(sessionUser interface{}) (*SessionShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	verified, _ := m["verified"].(bool)
	return &SessionShape{
		UserID:   userID,
		Name:     str(m["name"]),
		Email:    str(m["email"]),
		Phone:    str(m["phone"]),
		Role:     str(m["role"]),
		Verified: verified,
	}, nil
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
