package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/auth"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// UserRepo is the persistence surface the user service needs.
type UserRepo interface {
	Create(u *models.User) error
	Update(u *models.User) error
	FindByID(id uint) (models.User, error)
	FindByUsername(username string) (models.User, error)
	UsernameTaken(username string, excludeID uint) (bool, error)
	EmailTaken(email string, excludeID uint) (bool, error)
	Paginate(scopes []orm.Scope, page, limit int) ([]models.User, orm.Pagination, error)
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username             string `json:"username" validate:"required,alpha_dash,min=3,max=100"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8,max=72,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
	FullName             string `json:"full_name" validate:"max=255"`
}

// LoginInput is the payload for authentication.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is the payload for profile edits. Empty fields keep their
// current value; BirthDate expects YYYY-MM-DD.
type ProfileInput struct {
	FullName  string `json:"full_name" validate:"max=255"`
	Gender    string `json:"gender" validate:"nullable,in=male,female,other"`
	BirthDate string `json:"birth_date" validate:"nullable,date"`
	Phone     string `json:"phone" validate:"max=30"`
	Address   string `json:"address" validate:"max=512"`
}

// TokenPair is what a successful login yields.
type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// UserService implements account and authentication operations.
type UserService struct {
	repo UserRepo
}

func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(in RegisterInput) (models.User, error) {
	if taken, err := s.repo.UsernameTaken(in.Username, 0); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, ErrUsernameTaken
	}
	if taken, err := s.repo.EmailTaken(in.Email, 0); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		FullName: in.FullName,
		Role:     models.RoleUser,
	}
	if err := s.repo.Create(&u); err != nil {
		return u, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *UserService) Login(in LoginInput) (TokenPair, error) {
	u, err := s.repo.FindByUsername(in.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !auth.CheckPassword(u.Password, in.Password) {
		return TokenPair{}, ErrInvalidCredentials
	}

	access, err := auth.GenerateToken(u.ID, u.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(u.ID, u.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, User: u}, nil
}

// Get loads one account by id.
func (s *UserService) Get(id uint) (models.User, error) {
	u, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByUsername loads one account by username.
func (s *UserService) GetByUsername(username string) (models.User, error) {
	u, err := s.repo.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNotFound
	}
	return u, err
}

// UpdateProfile applies non-empty fields of in to the account.
func (s *UserService) UpdateProfile(id uint, in ProfileInput) (models.User, error) {
	u, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, err
	}

	if in.FullName != "" {
		u.FullName = in.FullName
	}
	if in.Gender != "" {
		u.Gender = in.Gender
	}
	if in.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil {
			return u, fmt.Errorf("parse birth date: %w", err)
		}
		u.BirthDate = &bd
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}

	if err := s.repo.Update(&u); err != nil {
		return u, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// SetRole lets an admin change another account's role.
func (s *UserService) SetRole(id uint, role string) (models.User, error) {
	if role != models.RoleAdmin && role != models.RoleUser {
		return models.User{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	u, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, err
	}
	u.Role = role
	if err := s.repo.Update(&u); err != nil {
		return u, fmt.Errorf("update role: %w", err)
	}
	return u, nil
}

// List returns one page of accounts, optionally filtered by a keyword over
// username, full name, email, phone and address.
func (s *UserService) List(keyword string, page, limit int) ([]models.User, orm.Pagination, error) {
	var scopes []orm.Scope
	if keyword != "" {
		scopes = append(scopes,
			orm.Keyword(keyword, "username", "full_name", "email", "phone", "address"))
	}
	return s.repo.Paginate(scopes, page, limit)
}
