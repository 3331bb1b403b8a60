// Package auth handles sign-in and password management for admin accounts.
package auth

import (
	"context"
	"log"

	"Backend-GnaasCMS/src/config"
	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"
	"Backend-GnaasCMS/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users store.UserStore
	cfg   *config.Config
}

func NewService(st *store.Store, cfg *config.Config) *Service {
	return &Service{users: st.Users, cfg: cfg}
}

// LoginResult carries the signed token and the user it belongs to.
type LoginResult struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// Login verifies credentials and issues a JWT. Wrong email and wrong
// password produce the same error so the endpoint cannot be used to probe
// for accounts.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	if emailAddr == "" || password == "" {
		return nil, models.Validationf("email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, models.Validationf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.Validationf("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID.Hex(), string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiry)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Login:", user.Email)
	return &LoginResult{Token: token, User: user.Summary()}, nil
}

// ChangePassword verifies the current password before replacing it.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < 6 {
		return models.Validationf("new password must be at least 6 characters")
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Validationf("invalid user id")
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return models.Validationf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, oid, string(hash))
}

// Me returns the signed-in user's public profile.
func (s *Service) Me(ctx context.Context, userID string) (*models.UserSummary, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.Validationf("invalid user id")
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}

// EnsureSuperAdmin seeds the configured super admin account at startup when
// it does not exist yet.
func (s *Service) EnsureSuperAdmin(ctx context.Context) error {
	if s.cfg.SuperAdminEmail == "" || s.cfg.SuperAdminPassword == "" {
		log.Println("⚠️  Super admin credentials not configured, skipping seed")
		return nil
	}
	if _, err := s.users.FindByEmail(ctx, s.cfg.SuperAdminEmail); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &models.User{
		FullName:     s.cfg.SuperAdminName,
		Email:        s.cfg.SuperAdminEmail,
		Role:         models.RoleSuperAdmin,
		PasswordHash: string(hash),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return err
	}
	log.Println("✅ Seeded super admin:", user.Email)
	return nil
}
