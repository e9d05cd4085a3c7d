package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/user"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
}

func NewAuthService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
) user.AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req user.LoginRequest) (user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return user.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.LoginResponse{}, user.ErrInvalidCredentials
		}
		return user.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return user.LoginResponse{}, user.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (user.LoginResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return user.LoginResponse{}, user.ErrInvalidToken
	}

	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return user.LoginResponse{}, user.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.LoginResponse{}, err
	}

	// Rotate: the presented refresh token is spent.
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(ctx, u)
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u *user.User) (user.LoginResponse, error) {
	var employeeID *string
	accessLevel := employee.AccessManager

	emp, err := s.employeeRepo.GetByUserID(ctx, u.ID)
	if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
		return user.LoginResponse{}, err
	}
	if emp != nil {
		employeeID = &emp.ID
		accessLevel = emp.AccessLevel
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Username, employeeID, accessLevel)
	if err != nil {
		return user.LoginResponse{}, err
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return user.LoginResponse{}, err
	}

	resp := user.LoginResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresAt:        expiresAt,
		RefreshExpiresAt: refreshExpiresAt,
		AccessLevel:      string(accessLevel),
	}
	if employeeID != nil {
		resp.EmployeeID = *employeeID
	}
	return resp, nil
}
