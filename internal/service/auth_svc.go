package service

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/events"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/repository"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

type AuthService struct {
	users  *repository.UserRepo
	pub    Publisher
	secret string
	ttl    time.Duration
}

func NewAuthService(users *repository.UserRepo, pub Publisher, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, pub: pub, secret: secret, ttl: ttl}
}

// Register creates the user with a fresh profile and sends the welcome
// notification.
func (s *AuthService) Register(ctx context.Context, username, email, password, phone string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Username: username, Email: email, PasswordHash: string(hash), Role: domain.RoleUser}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := s.users.UpdateProfile(ctx, &domain.Profile{UserID: u.ID, PhoneNumber: phone}); err != nil {
			log.Printf("[auth] set phone for %s: %v", u.ID, err)
		}
	}

	ev := events.UserRegistered{UserID: u.ID, Username: u.Username, Email: u.Email, Phone: phone}
	if err := s.pub.PublishJSON(ctx, events.RKUserRegistered, ev); err != nil {
		log.Printf("[auth] publish %s user=%s: %v", events.RKUserRegistered, u.ID, err)
	}
	return u, nil
}

// Login checks credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return auth.CreateAccessToken(s.secret, u.ID, u.Role, u.Email, s.ttl)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.users.ProfileByUserID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, first, last, phone string) (*domain.Profile, error) {
	p := &domain.Profile{UserID: userID, FirstName: first, LastName: last, PhoneNumber: phone}
	if err := s.users.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.users.ProfileByUserID(ctx, userID)
}
