package services

import (
	"errors"
	"time"

	"github.com/civicseva/civicseva-api/dto"
	"github.com/civicseva/civicseva-api/middleware"
	"github.com/civicseva/civicseva-api/models"
	"github.com/civicseva/civicseva-api/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrIncorrectPassword   = errors.New("old password is incorrect")
	ErrMissingOldPassword  = errors.New("old password is required to change password")
	ErrPasswordHashFailure = errors.New("failed to hash new password")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

type UserService struct {
	repos *repositories.Repos
}

func NewUserService(repos *repositories.Repos) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) RegisterUser(input dto.RegisterUserDTO) error {
	_, err := s.repos.User.GetUserByUsername(input.Username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordHashFailure
	}

	user := models.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
		Role:     string(models.UserRoleCitizen),
	}

	return s.repos.User.SaveUser(&user)
}

func (s *UserService) LoginUser(username, password string) (models.User, string, error) {
	user, err := s.repos.User.GetUserByUsername(username)
	if err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.UID, user.Username, user.Role, 24*time.Hour)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

func (s *UserService) FindUserByID(id uint) (models.User, error) {
	user, err := s.repos.User.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(id uint, input dto.UpdateUserDTO, actorIsAdmin bool) (models.User, error) {
	user, err := s.repos.User.GetUserByID(id)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	if input.Password != nil {
		if input.OldPassword == nil {
			return models.User{}, ErrMissingOldPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*input.OldPassword)); err != nil {
			return models.User{}, ErrIncorrectPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, ErrPasswordHashFailure
		}
		user.Password = string(hashed)
	}

	if input.Email != nil {
		user.Email = input.Email
	}
	if input.FullName != nil {
		user.FullName = input.FullName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}

	// Role and department changes are admin-only.
	if actorIsAdmin {
		if input.Role != nil {
			user.Role = *input.Role
		}
		if input.Department != nil {
			user.Department = input.Department
		}
	}

	if err := s.repos.User.SaveUser(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) RemoveUser(id uint) error {
	return s.repos.User.DeleteUser(id)
}
