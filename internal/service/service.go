package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"newspulse/internal/config"
	"newspulse/internal/models"
	"newspulse/internal/repository"
	"newspulse/internal/utils/email"
)

var (
	// ErrDuplicateUser is returned when the registration email is already taken.
	ErrDuplicateUser = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password, so a caller cannot tell which one occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	mailer *email.Sender
}

// NewService initializes a new service. The mailer may be nil when SMTP is not
// configured; registration then skips the welcome email.
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, mailer *email.Sender) *Service {
	return &Service{repo: repo, log: log, config: cfg, mailer: mailer}
}

// Register creates a new user with hashed password
func (s *Service) Register(emailAddr, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)

	if s.mailer != nil {
		// Best effort: a failed welcome mail never fails the registration.
		go func(to string) {
			if err := s.mailer.SendWelcome(to); err != nil {
				s.log.Warnf("Welcome email not sent to %s: %v", to, err)
			}
		}(user.Email)
	}

	return user, nil
}

// Login authenticates a user and returns a JWT token valid for 24 hours
func (s *Service) Login(emailAddr, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(emailAddr)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// ListBookmarks returns the authenticated user's bookmarked articles
func (s *Service) ListBookmarks(ctx context.Context) ([]models.Article, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBookmarks(userID)
}

// AddBookmark saves an article for the authenticated user
func (s *Service) AddBookmark(ctx context.Context, article *models.Article) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.AddBookmark(userID, article); err != nil {
		return err
	}

	s.log.Infof("Bookmark added for user %d: %s", userID, article.URL)
	return nil
}

// RemoveBookmark deletes the authenticated user's bookmark for the URL.
// Removing a bookmark that was never created succeeds with no state change.
func (s *Service) RemoveBookmark(ctx context.Context, articleURL string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.RemoveBookmark(userID, articleURL); err != nil {
		return err
	}

	s.log.Infof("Bookmark removed for user %d: %s", userID, articleURL)
	return nil
}

func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
