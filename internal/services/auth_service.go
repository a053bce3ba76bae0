package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventtrack/server/internal/apperr"
	"github.com/eventtrack/server/internal/helpers"
	"github.com/eventtrack/server/internal/models"
)

// ErrInvalidCredentials is returned for both unknown email and wrong
// password so a caller cannot tell which one failed.
var ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "Invalid credentials")

const bcryptCost = 10

type AuthService struct {
	userRepo  models.UserRepo
	jwtSecret string
}

func NewAuthService(userRepo models.UserRepo, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

type RegisterInput struct {
	Username  string `validate:"required,min=3,max=20"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	FirstName string `validate:"required,max=50"`
	LastName  string `validate:"required,max=50"`
	Role      string `validate:"omitempty,oneof=participant host"`
}

func (as *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, "", apperr.Wrap(apperr.KindValidation, "Invalid registration data", err)
	}

	existing, err := as.userRepo.FindUserByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		if existing.Email == in.Email {
			return nil, "", apperr.New(apperr.KindConflict, "Email already registered")
		}
		return nil, "", apperr.New(apperr.KindConflict, "Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleParticipant
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hashed),
		Avatar:    models.DefaultAvatar,
		Role:      role,
		IsActive:  true,
	}

	created, err := as.userRepo.InsertUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := helpers.GenerateToken(created.ID.Hex(), as.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return created, token, nil
}

func (as *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := as.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := helpers.GenerateToken(user.ID.Hex(), as.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

func (as *AuthService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return as.userRepo.FindUserByID(ctx, id)
}

// profileFields maps the mutable profile keys to their stored names. Any
// other key in an update payload is silently ignored.
var profileFields = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"bio":       "bio",
	"avatar":    "avatar",
	"hobbies":   "hobbies",
}

func (as *AuthService) UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	fields := map[string]interface{}{}
	for key, value := range updates {
		if stored, ok := profileFields[key]; ok {
			fields[stored] = value
		}
	}
	if len(fields) == 0 {
		return as.userRepo.FindUserByID(ctx, id)
	}

	return as.userRepo.UpdateUserFields(ctx, id, fields)
}
