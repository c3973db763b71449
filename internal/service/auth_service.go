package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"multilazos/internal/apierror"
	"multilazos/internal/config"
	"multilazos/internal/dto"
	"multilazos/internal/model"
	"multilazos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrCredenciales is returned for any failed login, whatever the cause.
var ErrCredenciales = errors.New("credenciales invalidas")

// SesionClaims are the claims of a session token. Username is the actor
// stamped on every write made with the session.
type SesionClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	EsStaff  bool   `json:"es_staff"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, username string) (*dto.UsuarioResponse, error)
	// CrearOActualizar hashes password and upserts the user by username.
	CrearOActualizar(ctx context.Context, username, nombre, password string, esStaff bool) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciales
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}

	duracion := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := FirmarSesion(s.cfg.JWTSecret, user, duracion)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        toUsuarioResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, username string) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, noEncontrado(err, "Usuario no encontrado")
	}
	resp := toUsuarioResponse(user)
	return &resp, nil
}

func (s *authService) CrearOActualizar(ctx context.Context, username, nombre, password string, esStaff bool) error {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 4 {
		return apierror.Validacion("username y password (min 4) son obligatorios")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	if nombre == "" {
		nombre = username
	}
	return s.repo.Upsert(ctx, &model.Usuario{
		Username:     username,
		Nombre:       nombre,
		PasswordHash: string(hash),
		EsStaff:      esStaff,
		Activo:       true,
	})
}

// FirmarSesion issues an HS256 session token for user.
func FirmarSesion(secret string, user *model.Usuario, duracion time.Duration) (string, error) {
	ahora := time.Now()
	claims := SesionClaims{
		UserID:   user.ID,
		Username: user.Username,
		EsStaff:  user.EsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(ahora),
			ExpiresAt: jwt.NewNumericDate(ahora.Add(duracion)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// LeerSesion validates tokenStr and returns its claims.
func LeerSesion(secret, tokenStr string) (*SesionClaims, error) {
	claims := &SesionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func toUsuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{ID: u.ID, Username: u.Username, Nombre: u.Nombre, EsStaff: u.EsStaff}
}
