package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/user"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
	"github.com/staffdesk/staffdesk-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db           *database.DB
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
	jwtSvc       jwt.Service
	jwtRepo      postgresql.JWTRepository
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, employeeRepository employee.EmployeeRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository) auth.AuthService {
	return &AuthServiceImpl{
		db:           db,
		userRepo:     userRepository,
		employeeRepo: employeeRepository,
		jwtSvc:       jwtService,
		jwtRepo:      jwtRepository,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	exists, err := a.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("check email availability: %w", err)
	}
	if exists {
		return auth.UserResponse{}, user.ErrUserEmailExists
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         user.Role(req.Role),
	}
	if req.EmployeeID != "" {
		emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return auth.UserResponse{}, err
		}
		newUser.EmployeeID = &emp.ID
	}

	created, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		return auth.UserResponse{}, err
	}

	return toUserResponse(created), nil
}

// LinkEmployee implements auth.AuthService.
func (a *AuthServiceImpl) LinkEmployee(ctx context.Context, req auth.LinkEmployeeRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	target, err := a.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return auth.UserResponse{}, err
	}
	if target.IsAdmin() {
		return auth.UserResponse{}, user.ErrEmployeeLinkNotAllowed
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return auth.UserResponse{}, err
	}

	if err := a.userRepo.LinkEmployee(ctx, target.ID, emp.ID); err != nil {
		return auth.UserResponse{}, err
	}

	target.EmployeeID = &emp.ID
	return toUserResponse(target), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.jwtSvc.JWTAuth(), refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.jwtRepo.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrUserNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("get user by id: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// Rotation: the presented token dies with the exchange.
		if err := a.jwtRepo.RevokeRefreshToken(txCtx, refreshToken); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}

		tokenResponse, err = a.generateTokenPair(txCtx, userData)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return a.jwtRepo.RevokeRefreshToken(ctx, refreshToken)
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.UserResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.UserResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.UserResponse{}, auth.ErrUserNotFound
		}
		return auth.UserResponse{}, fmt.Errorf("get user by id: %w", err)
	}

	return toUserResponse(userData), nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		tokenResponse, err = a.generateTokenPair(txCtx, userData)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

func (a *AuthServiceImpl) generateTokenPair(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwtSvc.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.Role,
	)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("create access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwtSvc.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("create refresh token: %w", err)
	}

	if err := a.jwtRepo.CreateRefreshToken(ctx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("save refresh token: %w", err)
	}

	return tokenResponse, nil
}

func toUserResponse(u user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
	}
}
