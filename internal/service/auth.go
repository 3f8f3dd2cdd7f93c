package service

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
	"github.com/nitespot-dev/nitespot/shared/logger"
)

type AuthService interface {
	Register(creds domain.Credentials) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(creds domain.Credentials, passHash string) (domain.UserId, error)
	User(email domain.Email) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

const minPasswordLen = 8

// Register creates an account. The email is normalized to lower case so
// logins are case-insensitive.
func (a *Auth) Register(creds domain.Credentials) (domain.UserId, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	if len(creds.Password) < minPasswordLen {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Password must be at least 8 characters", StatusCode: http.StatusBadRequest}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return "", err
	}

	id, err := a.storage.SaveUser(creds, string(passHash))
	if err != nil {
		return "", err
	}
	logger.Log.Info("user registered", "user_id", id)
	return id, nil
}

// Login checks the credentials and returns a signed access token.
// A missing user and a wrong password produce the same 401 so the
// endpoint does not leak which emails exist.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	invalid := &internal_errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}

	user, err := a.storage.User(creds.Email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", invalid
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", invalid
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return "", err
	}
	return token, nil
}
