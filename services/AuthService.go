package services

import (
	"errors"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stocksim.com/db"
	"stocksim.com/dto"
	"stocksim.com/types"
)

var (
	ErrMissingUsername  = errors.New("must provide username")
	ErrMissingPassword  = errors.New("must provide password")
	ErrPasswordMismatch = errors.New("confirm password does not match password")
	ErrUsernameTaken    = errors.New("username already exist")
	ErrBadCredentials   = errors.New("invalid username and/or password")
)

type AuthService struct {
}

func NewAuthService() *AuthService {
	return &AuthService{}
}

// Register creates a user with a bcrypt-hashed password and the configured
// starting cash. Usernames are unique; the database index backs up the
// check-then-insert.
func (s *AuthService) Register(req *dto.RegisterRequest) (*types.User, error) {
	if err := dto.Validate(req); err != nil {
		return nil, registerError(err)
	}

	var count int64
	if err := db.DB.Model(&types.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cash := startingCash()
	user := &types.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Cash:         cash,
		StartingCash: cash,
	}
	if err := db.DB.Create(user).Error; err != nil {
		return nil, ErrUsernameTaken
	}
	return user, nil
}

// Login verifies credentials and returns the user. Callers mint the session
// token.
func (s *AuthService) Login(req *dto.LoginRequest) (*types.User, error) {
	if err := dto.Validate(req); err != nil {
		return nil, loginError(err)
	}

	var user types.User
	if err := db.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrBadCredentials
	}
	return &user, nil
}

// registerError maps the first failed field to its user-facing rejection.
func registerError(err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err
	}
	switch fields[0].Field() {
	case "Username":
		return ErrMissingUsername
	case "Password":
		return ErrMissingPassword
	default:
		return ErrPasswordMismatch
	}
}

func loginError(err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err
	}
	if fields[0].Field() == "Username" {
		return ErrMissingUsername
	}
	return ErrMissingPassword
}

func startingCash() decimal.Decimal {
	if v := os.Getenv("STARTING_CASH"); v != "" {
		if cash, err := decimal.NewFromString(v); err == nil && cash.IsPositive() {
			return cash.Round(2)
		}
	}
	return decimal.NewFromInt(10000)
}
