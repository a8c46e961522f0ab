package game_test

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/SlpAus/reaction-records-backend/internal/game"
	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"github.com/SlpAus/reaction-records-backend/internal/testutil"
	"github.com/SlpAus/reaction-records-backend/internal/user"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

type ServiceSuite struct {
	suite.Suite
	ctx    context.Context
	player *user.User
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	testutil.SetupDB(s.T())
	user.ConfigureModule(config.AuthConfig{BcryptCost: bcrypt.MinCost})
	s.Require().NoError(user.PrimeDB())
	s.Require().NoError(game.PrimeDB())
	s.ctx = context.Background()

	u, errs, err := user.Create(s.ctx, serializer.Data{"username": "player", "password": "pw"})
	s.Require().NoError(err)
	s.Require().True(errs.Empty())
	s.player = u
}

func (s *ServiceSuite) playerID() json.Number {
	return json.Number(strconv.FormatUint(uint64(s.player.ID), 10))
}

func (s *ServiceSuite) TestCreateDefaultsScore() {
	g, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         s.playerID(),
		"time_ms":        json.Number("1000"),
		"rounds_to_play": json.Number("5"),
	})
	s.Require().NoError(err)
	s.Require().True(errs.Empty())

	s.NotZero(g.ID)
	s.Equal(s.player.ID, g.PlayerID)
	s.Equal(1000, g.TimeMs)
	s.Equal(5, g.RoundsToPlay)
	s.Equal(game.DefaultScore, g.Score)
}

func (s *ServiceSuite) TestCreateKeepsExplicitZeroScore() {
	g, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         s.playerID(),
		"time_ms":        json.Number("0"),
		"rounds_to_play": json.Number("0"),
		"score":          json.Number("0"),
	})
	s.Require().NoError(err)
	s.Require().True(errs.Empty())

	var stored game.Game
	s.Require().NoError(database.DB.First(&stored, g.ID).Error)
	s.Zero(stored.Score)
	s.Zero(stored.TimeMs)
}

func (s *ServiceSuite) TestCreateCoercesFormStrings() {
	g, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         strconv.FormatUint(uint64(s.player.ID), 10),
		"time_ms":        "312",
		"rounds_to_play": "10",
		"score":          "312.4",
	})
	s.Require().NoError(err)
	s.Require().True(errs.Empty())
	s.Equal(312, g.TimeMs)
	s.Equal(10, g.RoundsToPlay)
	s.InDelta(312.4, g.Score, 1e-9)
}

func (s *ServiceSuite) TestCreateRequiresFields() {
	g, errs, err := game.Create(s.ctx, serializer.Data{})
	s.Require().NoError(err)
	s.Nil(g)
	s.Equal(serializer.Errors{
		"player":         {serializer.MsgRequired},
		"time_ms":        {serializer.MsgRequired},
		"rounds_to_play": {serializer.MsgRequired},
	}, errs)
}

func (s *ServiceSuite) TestCreateRejectsUnknownPlayer() {
	g, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         json.Number("9999"),
		"time_ms":        json.Number("1000"),
		"rounds_to_play": json.Number("5"),
	})
	s.Require().NoError(err)
	s.Nil(g)
	s.Equal(serializer.Errors{"player": {`Invalid pk "9999" - object does not exist.`}}, errs)

	games, err := game.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *ServiceSuite) TestCreateRejectsAnonymousClientID() {
	_, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         "1f0c6a4e-8d3b-4a51-b0d2-7c2b9a1e5f33",
		"time_ms":        json.Number("250"),
		"rounds_to_play": json.Number("10"),
		"score":          json.Number("250.4"),
	})
	s.Require().NoError(err)
	s.Equal(serializer.Errors{"player": {"Incorrect type. Expected pk value, received str."}}, errs)
}

func (s *ServiceSuite) TestCreateRejectsInvalidTypesAndRanges() {
	_, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         true,
		"time_ms":        json.Number("2147483648"),
		"rounds_to_play": "five",
		"score":          "high",
	})
	s.Require().NoError(err)
	s.Equal(serializer.Errors{
		"player":         {"Incorrect type. Expected pk value, received bool."},
		"time_ms":        {"Ensure this value is less than or equal to 2147483647."},
		"rounds_to_play": {serializer.MsgInvalidInteger},
		"score":          {serializer.MsgInvalidNumber},
	}, errs)
}

func (s *ServiceSuite) TestCreateReportsOverflowAgainstTheRightBound() {
	_, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         s.playerID(),
		"time_ms":        json.Number("9223372036854775808"),
		"rounds_to_play": json.Number("-9223372036854775809"),
	})
	s.Require().NoError(err)
	s.Equal(serializer.Errors{
		"time_ms":        {"Ensure this value is less than or equal to 2147483647."},
		"rounds_to_play": {"Ensure this value is greater than or equal to -2147483648."},
	}, errs)
}

func (s *ServiceSuite) TestCreateAcceptsIntegralFloatPlayer() {
	g, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         json.Number(s.playerID().String() + ".0"),
		"time_ms":        json.Number("300"),
		"rounds_to_play": json.Number("10"),
	})
	s.Require().NoError(err)
	s.Require().True(errs.Empty(), errs)
	s.Equal(s.player.ID, g.PlayerID)
}

func (s *ServiceSuite) TestCreateRejectsNullScore() {
	_, errs, err := game.Create(s.ctx, serializer.Data{
		"player":         s.playerID(),
		"time_ms":        json.Number("1"),
		"rounds_to_play": json.Number("1"),
		"score":          nil,
	})
	s.Require().NoError(err)
	s.Equal(serializer.Errors{"score": {serializer.MsgNull}}, errs)
}

func (s *ServiceSuite) TestForeignKeyIsEnforcedByTheDatabase() {
	orphan := game.Game{PlayerID: s.player.ID + 1, TimeMs: 1, RoundsToPlay: 1, Score: 1}
	err := database.DB.Omit(clause.Associations).Create(&orphan).Error
	s.Error(err)
}

func (s *ServiceSuite) TestListReturnsEveryGame() {
	for i := 0; i < 4; i++ {
		_, errs, err := game.Create(s.ctx, serializer.Data{
			"player":         s.playerID(),
			"time_ms":        json.Number(strconv.Itoa(100 * (i + 1))),
			"rounds_to_play": json.Number("10"),
		})
		s.Require().NoError(err)
		s.Require().True(errs.Empty())
	}

	games, err := game.List(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 4)
	for i := 1; i < len(games); i++ {
		s.Less(games[i-1].ID, games[i].ID)
	}
}

func (s *ServiceSuite) TestToResponseExposesPlayerID() {
	resp := game.ToResponse(game.Game{ID: 7, PlayerID: 3, TimeMs: 900, RoundsToPlay: 10, Score: 10000})
	body, err := json.Marshal(resp)
	s.Require().NoError(err)
	s.JSONEq(`{"id":7,"time_ms":900,"rounds_to_play":10,"score":10000,"player":3}`, string(body))
}
