package auth

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("incorrect username or password")

// Service handles admin authentication for the dashboard.
type Service struct {
	admins repositories.AdminRepository
}

func NewService(admins repositories.AdminRepository) *Service {
	return &Service{admins: admins}
}

// Login verifies the password and issues a signed token.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiry, err := utils.GenerateJWT(admin.ID.Hex(), admin.Username, admin.Role, req.RememberMe)
	if err != nil {
		return nil, err
	}

	if err := s.admins.UpdateLastLogin(ctx, admin.ID, time.Now()); err != nil {
		log.Println("⚠️ Failed to record last login:", err)
	}

	resp := &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: expiry.String(),
	}
	resp.User.ID = admin.ID.Hex()
	resp.User.Username = admin.Username
	resp.User.Role = admin.Role
	return resp, nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *Service) Logout(claims *utils.JWTClaims) error {
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return utils.BlacklistToken(claims.ID, remaining)
}

// Me resolves the authenticated admin from the token subject.
func (s *Service) Me(ctx context.Context, userID string) (*models.Admin, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	return s.admins.GetByID(ctx, id)
}

// SeedDefaultAdmin creates the bootstrap account from ADMIN_USERNAME /
// ADMIN_PASSWORD when no such admin exists yet.
func (s *Service) SeedDefaultAdmin(ctx context.Context) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("⚠️ ADMIN_USERNAME/ADMIN_PASSWORD not set. Skipping admin seed.")
		return
	}

	if _, err := s.admins.GetByUsername(ctx, username); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("❌ Failed to hash admin password:", err)
		return
	}

	admin := &models.Admin{
		Username: username,
		Password: string(hash),
		Role:     models.RoleSuperadmin,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		log.Println("❌ Failed to seed admin:", err)
		return
	}
	log.Println("✅ Seeded default admin:", username)
}
