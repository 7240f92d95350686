package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "anchorledger/pkg/domain-errors"
)

type JWTSuite struct {
	suite.Suite
	svc *Service
}

func (s *JWTSuite) SetupTest() {
	s.svc = NewService("test-signing-key", "anchorledger")
}

func TestJWTSuite(t *testing.T) {
	suite.Run(t, new(JWTSuite))
}

func (s *JWTSuite) TestRoundTrip() {
	token, err := s.svc.GenerateToken("anchor-1", time.Hour)
	s.Require().NoError(err)

	actor, err := s.svc.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal("anchor-1", actor.String())
}

func (s *JWTSuite) TestValidateRejections() {
	s.Run("expired token", func() {
		token, err := s.svc.GenerateToken("anchor-1", -time.Minute)
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(token)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("wrong signing key", func() {
		other := NewService("different-key", "anchorledger")
		token, err := other.GenerateToken("anchor-1", time.Hour)
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(token)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("garbage token", func() {
		_, err := s.svc.ValidateToken("not-a-token")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("missing subject", func() {
		token, err := s.svc.GenerateToken("", time.Hour)
		s.Require().NoError(err)

		_, err = s.svc.ValidateToken(token)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
