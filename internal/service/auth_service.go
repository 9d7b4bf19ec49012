package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/SmekensRuben/HotelSuite/internal/config"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	users UserService
	cfg   *config.Config
}

func NewAuthService(users UserService, cfg *config.Config) AuthService {
	return &authService{users: users, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	hash, _ := user["passwordHash"].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user["active"] == false {
		return nil, ErrInvalidCredentials
	}

	return s.tokenPair(user, req.HotelUID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	hotelUID, _ := claims["hotel_uid"].(string)

	user, err := s.users.FindByEmail(ctx, claimString(claims, "email"))
	if err != nil {
		return nil, errors.New("user not found or inactive")
	}
	if id, _ := user["id"].(string); id != userID {
		return nil, errors.New("malformed token")
	}
	if user["active"] == false {
		return nil, errors.New("user not found or inactive")
	}

	return s.tokenPair(user, hotelUID)
}

// tokenPair issues access and refresh tokens carrying the roles for the
// requested hotel scope plus any flat permission grants on the user document.
func (s *authService) tokenPair(user map[string]any, hotelUID string) (*dto.LoginResponse, error) {
	roles := rolesForHotel(user, hotelUID)

	accessToken, err := s.generateToken(user, hotelUID, roles, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, hotelUID, roles, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
	}, nil
}

func (s *authService) generateToken(user map[string]any, hotelUID string, roles []string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user["id"],
		"email":     user["email"],
		"hotel_uid": hotelUID,
		"roles":     roles,
		"exp":       time.Now().Add(duration).Unix(),
		"iat":       time.Now().Unix(),
	}
	if perms := stringSlice(user["permissions"]); len(perms) > 0 {
		claims["permissions"] = perms
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// rolesForHotel reads the per-hotel role assignment off the user document.
// The roles field maps hotelUid to a list of role names.
func rolesForHotel(user map[string]any, hotelUID string) []string {
	switch assigned := user["roles"].(type) {
	case map[string][]string:
		return assigned[hotelUID]
	case map[string]any:
		return stringSlice(assigned[hotelUID])
	}
	return nil
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
