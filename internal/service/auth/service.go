// Package auth implements registration and login. The account
// subsystem is deliberately small: it exists to mint the tokens the
// gateway and API verify.
package auth

import (
	"apna_room_server/internal/dao/mysql"
	"apna_room_server/internal/dto/request"
	"apna_room_server/internal/dto/respond"
	"apna_room_server/internal/model"
	"apna_room_server/pkg/errorx"
	"apna_room_server/pkg/util/jwt"
	"apna_room_server/pkg/util/random"
)

type authService struct {
	repos *mysql.Repositories
}

// NewAuthService creates the auth service over the repository
// aggregate.
func NewAuthService(repos *mysql.Repositories) *authService {
	return &authService{repos: repos}
}

// Register creates an account. Email uniqueness is checked up front
// for a friendly error; the unique index still backstops races.
func (s *authService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if _, err := s.repos.User.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "email already registered")
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	user := model.User{
		Uuid:        "U" + random.GetNowAndLenRandomString(11),
		Email:       req.Email,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Role:        req.Role,
		RawPassword: req.Password,
	}
	if err := s.repos.User.Create(&user); err != nil {
		return nil, err
	}

	return &respond.RegisterRespond{
		Uuid:     user.Uuid,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Wrong email and wrong password return the same error.
func (s *authService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeInvalidLogin, "invalid email or password")
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidLogin, "invalid email or password")
	}

	accessToken, err := jwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "issue access token")
	}
	refreshToken, _, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "issue refresh token")
	}

	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
