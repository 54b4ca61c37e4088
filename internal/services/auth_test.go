package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/aeterna-motors/booking-api/internal/repositories"
	"github.com/aeterna-motors/booking-api/internal/services"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	tests := []struct {
		name         string
		userName     string
		email        string
		password     string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		wantErr      error
	}{
		{
			name:     "successful signup",
			userName: "Alice",
			email:    "alice@example.com",
			password: "secret1",
		},
		{
			name:         "email already exists",
			userName:     "Bob",
			email:        "bob@example.com",
			password:     "secret1",
			existingUser: &models.UserDB{UserID: uuid.New()},
			wantErr:      services.ErrEmailAlreadyExists,
		},
		{
			name:      "reader error",
			userName:  "Eve",
			email:     "eve@example.com",
			password:  "secret1",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "concurrent signup loses race",
			userName:  "Carol",
			email:     "carol@example.com",
			password:  "secret1",
			writerErr: repositories.ErrEmailExists,
			wantErr:   services.ErrEmailAlreadyExists,
		},
		{
			name:      "writer error",
			userName:  "Dave",
			email:     "dave@example.com",
			password:  "secret1",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.existingUser, tt.readerErr)

			if tt.existingUser == nil && tt.readerErr == nil {
				userID := uuid.New()
				mockWriter.EXPECT().
					Save(gomock.Any(), tt.userName, tt.email, gomock.Any()).
					DoAndReturn(func(_ context.Context, name, email, passwordHash string) (*models.UserDB, error) {
						if tt.writerErr != nil {
							return nil, tt.writerErr
						}
						// The stored secret must verify against the plaintext
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(tt.password)))
						return &models.UserDB{UserID: userID, Name: name, Email: email, PasswordHash: passwordHash}, nil
					})

				if tt.writerErr == nil {
					mockJWT.EXPECT().
						Generate(gomock.Any(), userID, tt.email).
						Return("token123", nil)
				}
			}

			user, token, err := svc.Signup(context.Background(), tt.userName, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, "token123", token)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	password := "secret1"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID := uuid.New()

	tests := []struct {
		name      string
		email     string
		loginPass string
		user      *models.UserDB
		readerErr error
		expectJWT string
		wantErr   error
	}{
		{
			name:      "successful login",
			email:     "alice@example.com",
			loginPass: password,
			user:      &models.UserDB{UserID: userID, Email: "alice@example.com", PasswordHash: string(hashed)},
			expectJWT: "token123",
		},
		{
			name:      "unknown email",
			email:     "nobody@example.com",
			loginPass: password,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "wrong password",
			email:     "alice@example.com",
			loginPass: "wrongpass",
			user:      &models.UserDB{UserID: userID, Email: "alice@example.com", PasswordHash: string(hashed)},
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			email:     "alice@example.com",
			loginPass: password,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.user, tt.readerErr)

			if tt.expectJWT != "" {
				mockJWT.EXPECT().
					Generate(gomock.Any(), tt.user.UserID, tt.user.Email).
					Return(tt.expectJWT, nil)
			}

			user, token, err := svc.Login(context.Background(), tt.email, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.user.UserID, user.UserID)
				assert.Equal(t, tt.expectJWT, token)
			}
		})
	}
}

// Signup followed by login with the same password must succeed and return
// the same identity; a wrong password must be rejected.
func TestAuthService_SignupThenLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	var stored *models.UserDB

	mockReader.EXPECT().
		GetByEmail(gomock.Any(), "alice@x.com").
		DoAndReturn(func(_ context.Context, _ string) (*models.UserDB, error) {
			return stored, nil
		}).
		Times(3)
	mockWriter.EXPECT().
		Save(gomock.Any(), "Alice", "alice@x.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, passwordHash string) (*models.UserDB, error) {
			stored = &models.UserDB{UserID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash}
			return stored, nil
		})
	mockJWT.EXPECT().
		Generate(gomock.Any(), gomock.Any(), "alice@x.com").
		Return("token123", nil).
		Times(2)

	created, _, err := svc.Signup(context.Background(), "Alice", "alice@x.com", "secret1")
	assert.NoError(t, err)

	loggedIn, token, err := svc.Login(context.Background(), "alice@x.com", "secret1")
	assert.NoError(t, err)
	assert.Equal(t, created.UserID, loggedIn.UserID)
	assert.Equal(t, "token123", token)

	_, _, err = svc.Login(context.Background(), "alice@x.com", "wrongpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_GetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockTokenIssuer(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(&models.UserDB{UserID: userID, Email: "alice@example.com"}, nil)

		user, err := svc.GetUser(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(nil, nil)

		user, err := svc.GetUser(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
