package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing.
const BcryptCost = 12

var errInvalidCredentials = errcodes.Unauthorized("Invalid credentials")

// Service handles authentication operations.
type Service struct {
	db bun.IDB
}

// NewService creates a new auth service.
func NewService(db bun.IDB) *Service {
	return &Service{db}
}

// CountUsers returns the total number of users.
func (svc *Service) CountUsers(ctx context.Context) (int, error) {
	count, err := svc.db.NewSelect().Model((*models.User)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return count, nil
}

// RetrieveUser looks a user up by username.
func (svc *Service) RetrieveUser(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := svc.db.NewSelect().
		Model(user).
		Where("u.username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("User")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// Authenticate validates credentials and returns the user if valid. Any
// failure, including a missing username or password, is reported as invalid
// credentials.
func (svc *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errInvalidCredentials
	}

	user, err := svc.RetrieveUser(ctx, username)
	if err != nil {
		if errors.Is(err, errcodes.NotFound("User")) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	return user, nil
}

// Register creates a student account. Usernames are unique.
func (svc *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	return svc.createUser(ctx, username, password, models.RoleStudent)
}

// SeedAdmin creates the admin account when there are no users at all. It
// reports whether a user was created.
func (svc *Service) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := svc.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = svc.createUser(ctx, username, password, models.RoleAdmin)
	if err != nil {
		return false, err
	}

	logger.FromContext(ctx).Info("admin user seeded", logger.Data{"username": username})
	return true, nil
}

func (svc *Service) createUser(ctx context.Context, username, password, role string) (*models.User, error) {
	_, err := svc.RetrieveUser(ctx, username)
	if err == nil {
		return nil, errcodes.Conflict("Username already exists")
	}
	if !errors.Is(err, errcodes.NotFound("User")) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           models.NewID(),
		CreatedAt:    time.Now(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	_, err = svc.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		// A concurrent registration can win the race to the unique index.
		if _, lookupErr := svc.RetrieveUser(ctx, username); lookupErr == nil {
			return nil, errcodes.Conflict("Username already exists")
		}
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errcodes.ValidationError("Password must be at most 72 bytes")
	}
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
