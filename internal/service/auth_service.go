package service

import (
	"database/sql"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stayspot/internal/apperr"
	"stayspot/internal/auth"
	"stayspot/internal/db"
	"stayspot/internal/entities"
	"stayspot/internal/repository"
)

type AuthService interface {
	Signup(input entities.SignupInput) (*entities.SessionResponse, error)
	Login(email, password string) (*entities.SessionResponse, error)
	GetUser(userID int) (*entities.AuthUser, error)
}

type authService struct {
	repo      repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *authService) Signup(input entities.SignupInput) (*entities.SessionResponse, error) {
	fields := map[string]string{}
	if input.FirstName == "" {
		fields["firstName"] = "First name is required"
	}
	if input.LastName == "" {
		fields["lastName"] = "Last name is required"
	}
	if input.Email == "" {
		fields["email"] = "Email is required"
	}
	if len(input.Password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	existing, err := s.repo.GetByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(http.StatusForbidden, "User with that email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if input.Phone != "" {
		user.Phone = sql.NullString{String: input.Phone, Valid: true}
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *authService) Login(email, password string) (*entities.SessionResponse, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return s.session(user)
}

func (s *authService) GetUser(userID int) (*entities.AuthUser, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}
	return &entities.AuthUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}, nil
}

func (s *authService) session(user *db.User) (*entities.SessionResponse, error) {
	token, err := auth.MintToken(s.jwtSecret, user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &entities.SessionResponse{
		User: entities.AuthUser{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		Token: token,
	}, nil
}
