package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/karansingh008/Tourizio/authorization"
	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/errors"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	store  domain.UserStore
	cache  domain.SessionCache
	tracer trace.Tracer
}

func NewAuthService(store domain.UserStore, cache domain.SessionCache, tracer trace.Tracer) *AuthService {
	return &AuthService{
		store:  store,
		cache:  cache,
		tracer: tracer,
	}
}

func (service *AuthService) Signup(ctx context.Context, user *domain.User) error {
	ctx, span := service.tracer.Start(ctx, "AuthService.Signup")
	defer span.End()

	if user.FirstName == "" || user.LastName == "" || user.Email == "" || user.Password == "" {
		return fmt.Errorf(errors.AllFieldsRequired)
	}

	if len(user.Password) < 6 {
		return fmt.Errorf(errors.PasswordTooShortError)
	}

	if err := user.ValidateUser(); err != nil {
		log.Println(err)
		return fmt.Errorf(errors.InvalidRequestFormatError)
	}

	existing, err := service.store.GetByEmail(ctx, user.Email)
	if err != nil {
		span.SetStatus(codes.Error, "Error checking existing user")
		return err
	}
	if existing != nil {
		return fmt.Errorf(errors.UserExistsError)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		span.SetStatus(codes.Error, "Error hashing password")
		log.Println(err)
		return err
	}
	user.Password = string(hash)

	if user.ProfilePic == "" {
		user.ProfilePic = domain.DefaultProfilePic
	}

	return service.store.Insert(ctx, user)
}

// Login checks the credentials and, on success, opens a cached session and
// returns a signed token carrying its ID.
func (service *AuthService) Login(ctx context.Context, credentials *domain.Credentials) (string, *domain.Session, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	user, err := service.store.GetByEmail(ctx, credentials.Email)
	if err != nil {
		span.SetStatus(codes.Error, "Error fetching user")
		return "", nil, err
	}
	if user == nil {
		return "", nil, fmt.Errorf(errors.InvalidCredentials)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password))
	if err != nil {
		return "", nil, fmt.Errorf(errors.InvalidCredentials)
	}

	session := &domain.Session{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Age:        user.Age,
		ProfilePic: user.ProfilePic,
	}

	if err := service.cache.PostSession(ctx, session); err != nil {
		span.SetStatus(codes.Error, "Error caching session")
		return "", nil, err
	}

	claims := &domain.Claims{
		SessionID: session.ID,
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		Role:      "User",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	token, err := authorization.GenerateToken(claims)
	if err != nil {
		span.SetStatus(codes.Error, "Error generating token")
		return "", nil, err
	}

	return token, session, nil
}

func (service *AuthService) Logout(ctx context.Context, sessionID string) error {
	ctx, span := service.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	return service.cache.DelSession(ctx, sessionID)
}
