package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/core/services"
	"github.com/ledgerline/ledgerline_backend/internal/dto"
	"github.com/ledgerline/ledgerline_backend/internal/platform/config"
	"github.com/ledgerline/ledgerline_backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	cfg     *config.Config
	service portssvc.AuthSvcFacade
	ctx     context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(suite.T(), err)

	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "ledgerline-test",
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	}
	suite.service = services.NewAuthService(suite.cfg)
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	resp, err := suite.service.Login(suite.ctx, dto.LoginRequest{
		Username: "admin",
		Password: "correct horse battery staple",
	})

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), resp)
	assert.NotEmpty(suite.T(), resp.Token)
	assert.WithinDuration(suite.T(), time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	resp, err := suite.service.Login(suite.ctx, dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
	assert.Nil(suite.T(), resp)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUsername() {
	resp, err := suite.service.Login(suite.ctx, dto.LoginRequest{
		Username: "root",
		Password: "correct horse battery staple",
	})

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
	assert.Nil(suite.T(), resp)
}

func (suite *AuthServiceTestSuite) TestValidateToken_RoundTrip() {
	resp, err := suite.service.Login(suite.ctx, dto.LoginRequest{
		Username: "admin",
		Password: "correct horse battery staple",
	})
	require.NoError(suite.T(), err)

	subject, err := suite.service.ValidateToken(suite.ctx, resp.Token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "admin", subject)
}

func (suite *AuthServiceTestSuite) TestValidateToken_WrongSecret() {
	token, err := utils.GenerateJWT("admin", "other-secret", time.Hour, "ledgerline-test")
	require.NoError(suite.T(), err)

	_, err = suite.service.ValidateToken(suite.ctx, token)
	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Expired() {
	token, err := utils.GenerateJWT("admin", "test-secret", -time.Minute, "ledgerline-test")
	require.NoError(suite.T(), err)

	_, err = suite.service.ValidateToken(suite.ctx, token)
	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
