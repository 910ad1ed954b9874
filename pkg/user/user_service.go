package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/jwt"
)

type (
	UserService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context) error
		GetUser(ctx context.Context, userID string) (domain.UserResponse, error)
		GetPreferences(ctx context.Context) (entities.Preferences, error)
		UpdatePreferences(ctx context.Context, prefs entities.Preferences) (entities.Preferences, error)
	}

	userService struct {
		state          *appstate.State
		userRepository UserRepository
		jwtService     jwt.JWTService
		now            func() time.Time
	}
)

func NewUserService(state *appstate.State, userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		state:          state,
		userRepository: userRepository,
		jwtService:     jwtService,
		now:            time.Now,
	}
}

func toUserResponse(u entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

// Login signs in the local demo identity. An existing identity is reused so
// repeated logins keep the same id.
func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if err := s.state.Reload(ctx); err != nil {
		return domain.LoginResponse{}, err
	}

	current, ok := s.userRepository.GetUser()
	var u entities.User
	if ok {
		u = *current
	} else {
		u = entities.User{
			ID:    fmt.Sprintf("user_%d", s.now().UnixMilli()),
			Name:  domain.DemoUserName,
			Email: domain.DemoUserEmail,
		}
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		u.Email = email
	}
	if err := s.userRepository.SaveUser(ctx, u); err != nil {
		return domain.LoginResponse{}, err
	}

	token, err := s.jwtService.GenerateTokenUser(u.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{Token: token, User: toUserResponse(u)}, nil
}

func (s *userService) Logout(ctx context.Context) error {
	return s.userRepository.DeleteUser(ctx)
}

func (s *userService) GetUser(ctx context.Context, userID string) (domain.UserResponse, error) {
	if err := s.state.Reload(ctx); err != nil {
		return domain.UserResponse{}, err
	}
	u, ok := s.userRepository.GetUser()
	if !ok || u.ID != userID {
		return domain.UserResponse{}, domain.ErrUserNotFound
	}
	return toUserResponse(*u), nil
}

func (s *userService) GetPreferences(ctx context.Context) (entities.Preferences, error) {
	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}
	return s.userRepository.GetPreferences(), nil
}

func (s *userService) UpdatePreferences(ctx context.Context, prefs entities.Preferences) (entities.Preferences, error) {
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrValidation, domain.ErrInvalidPreference, err)
	}
	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}
	if err := s.userRepository.SavePreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return s.userRepository.GetPreferences(), nil
}
