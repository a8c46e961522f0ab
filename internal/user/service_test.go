package user_test

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/SlpAus/reaction-records-backend/internal/game"
	"github.com/SlpAus/reaction-records-backend/internal/platform/config"
	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"github.com/SlpAus/reaction-records-backend/internal/testutil"
	"github.com/SlpAus/reaction-records-backend/internal/user"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type ServiceSuite struct {
	suite.Suite
	ctx context.Context
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
}

func (s *ServiceSuite) create(data serializer.Data) *user.User {
	u, errs, err := user.Create(s.ctx, data)
	s.Require().NoError(err)
	s.Require().True(errs.Empty(), "unexpected errors: %v", errs)
	return u
}

func (s *ServiceSuite) TestCreateAppliesIdentityDefaults() {
	before := time.Now().UTC().Add(-time.Second)
	u := s.create(serializer.Data{"username": "alice", "password": "hunter2"})

	s.NotZero(u.ID)
	s.Equal("alice", u.Username)
	s.True(u.IsActive)
	s.False(u.IsStaff)
	s.False(u.IsSuperuser)
	s.Nil(u.LastLogin)
	s.Empty(u.Email)
	s.True(u.DateJoined.After(before))
}

func (s *ServiceSuite) TestToResponseFieldOrder() {
	joined := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	body, err := json.Marshal(user.ToResponse(user.User{
		ID: 4, Password: "hash", Username: "alice", IsActive: true, DateJoined: joined,
	}))
	s.Require().NoError(err)
	s.Equal(`{"id":4,"password":"hash","last_login":null,"is_superuser":false,`+
		`"username":"alice","first_name":"","last_name":"","email":"",`+
		`"is_staff":false,"is_active":true,"date_joined":"2024-05-01T12:00:00Z",`+
		`"groups":[],"user_permissions":[]}`, string(body))
}

func (s *ServiceSuite) TestCreateHashesPassword() {
	u := s.create(serializer.Data{"username": "alice", "password": "hunter2"})

	s.NotEqual("hunter2", u.Password)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("hunter2")))
}

func (s *ServiceSuite) TestCreateAcceptsOptionalFields() {
	u := s.create(serializer.Data{
		"id":           json.Number("999"),
		"username":     "bob",
		"password":     "pw",
		"email":        "bob@example.com",
		"first_name":   "Bob",
		"last_name":    "Stone",
		"is_staff":     true,
		"is_active":    "false",
		"last_login":   "2025-01-02T03:04:05Z",
		"date_joined":  "2024-12-31T00:00:00Z",
		"is_superuser": false,
	})

	s.NotEqual(uint(999), u.ID, "id is read-only")
	s.Equal("bob@example.com", u.Email)
	s.Equal("Bob", u.FirstName)
	s.Equal("Stone", u.LastName)
	s.True(u.IsStaff)
	s.False(u.IsActive)
	s.Require().NotNil(u.LastLogin)
	s.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), u.LastLogin.UTC())
	s.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), u.DateJoined.UTC())
}

func (s *ServiceSuite) TestCreateRequiresUsernameAndPassword() {
	u, errs, err := user.Create(s.ctx, serializer.Data{})
	s.Require().NoError(err)
	s.Nil(u)
	s.Equal(serializer.Errors{
		"username": {serializer.MsgRequired},
		"password": {serializer.MsgRequired},
	}, errs)

	users, err := user.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *ServiceSuite) TestCreateRejectsInvalidFields() {
	_, errs, err := user.Create(s.ctx, serializer.Data{
		"username":   "not valid!",
		"password":   "   ",
		"email":      "not-an-email",
		"first_name": strings.Repeat("x", 151),
		"is_staff":   "sometimes",
	})
	s.Require().NoError(err)
	s.Equal(serializer.Errors{
		"username":   {serializer.MsgInvalidUsername},
		"password":   {serializer.MsgBlank},
		"email":      {serializer.MsgInvalidEmail},
		"first_name": {"Ensure this field has no more than 150 characters."},
		"is_staff":   {serializer.MsgInvalidBoolean},
	}, errs)
}

func (s *ServiceSuite) TestCreateRejectsPasswordBcryptCannotHash() {
	_, errs, err := user.Create(s.ctx, serializer.Data{"username": "alice", "password": strings.Repeat("p", 73)})
	s.Require().NoError(err)
	s.Equal([]string{user.MsgPasswordTooLong}, errs["password"])
}

func (s *ServiceSuite) TestCreateRejectsDuplicateUsername() {
	s.create(serializer.Data{"username": "alice", "password": "a"})

	u, errs, err := user.Create(s.ctx, serializer.Data{"username": "alice", "password": "b"})
	s.Require().NoError(err)
	s.Nil(u)
	s.Equal(serializer.Errors{"username": {user.MsgUsernameTaken}}, errs)
}

func (s *ServiceSuite) TestListReturnsEveryUserWithDistinctIDs() {
	seen := map[uint]bool{}
	for _, name := range []string{"a", "b", "c"} {
		u := s.create(serializer.Data{"username": name, "password": "pw"})
		s.False(seen[u.ID])
		seen[u.ID] = true
	}

	users, err := user.List(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 3)
	for _, u := range users {
		s.True(seen[u.ID])
	}
}

func (s *ServiceSuite) TestExistsWithoutRedis() {
	u := s.create(serializer.Data{"username": "alice", "password": "pw"})

	exists, err := user.Exists(s.ctx, int64(u.ID))
	s.Require().NoError(err)
	s.True(exists)

	exists, err = user.Exists(s.ctx, int64(u.ID)+100)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *ServiceSuite) TestDeleteCascadesToGames() {
	alice := s.create(serializer.Data{"username": "alice", "password": "pw"})
	bob := s.create(serializer.Data{"username": "bob", "password": "pw"})

	for _, id := range []uint{alice.ID, alice.ID, bob.ID} {
		_, errs, err := game.Create(s.ctx, serializer.Data{
			"player":         json.Number(strconv.FormatUint(uint64(id), 10)),
			"time_ms":        json.Number("1000"),
			"rounds_to_play": json.Number("5"),
		})
		s.Require().NoError(err)
		s.Require().True(errs.Empty())
	}

	s.Require().NoError(user.Delete(s.ctx, alice.ID))

	games, err := game.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(bob.ID, games[0].PlayerID)

	s.ErrorIs(user.Delete(s.ctx, alice.ID), user.ErrUserNotFound)
}

type DirectorySuite struct {
	suite.Suite
	ctx context.Context
}

func TestDirectorySuite(t *testing.T) {
	suite.Run(t, new(DirectorySuite))
}

func (s *DirectorySuite) SetupTest() {
	testutil.SetupDB(s.T())
	testutil.SetupRedis(s.T())
	user.ConfigureModule(config.AuthConfig{BcryptCost: bcrypt.MinCost})
	s.Require().NoError(user.PrimeDB())
	s.ctx = context.Background()
}

func (s *DirectorySuite) TestWarmupLoadsExistingUsers() {
	// Redis不可用时创建的用户不会进入目录
	u, _, err := user.Create(s.ctx, serializer.Data{"username": "alice", "password": "pw"})
	s.Require().NoError(err)
	s.Require().NotNil(u)

	known, err := database.RDB.SIsMember(s.ctx, user.KnownUsersKey, u.ID).Result()
	s.Require().NoError(err)
	s.False(known)

	user.LockRepository()
	s.Require().NoError(user.WarmupCache())
	user.UnlockRepository()

	known, err = database.RDB.SIsMember(s.ctx, user.KnownUsersKey, u.ID).Result()
	s.Require().NoError(err)
	s.True(known)
}

func (s *DirectorySuite) TestCreateAndDeleteMaintainDirectory() {
	user.LockRepository()
	s.Require().NoError(user.WarmupCache())
	user.UnlockRepository()
	testutil.MarkRedisHealthy()

	u, _, err := user.Create(s.ctx, serializer.Data{"username": "alice", "password": "pw"})
	s.Require().NoError(err)

	known, err := database.RDB.SIsMember(s.ctx, user.KnownUsersKey, u.ID).Result()
	s.Require().NoError(err)
	s.True(known)

	s.Require().NoError(user.Delete(s.ctx, u.ID))
	known, err = database.RDB.SIsMember(s.ctx, user.KnownUsersKey, u.ID).Result()
	s.Require().NoError(err)
	s.False(known)
}

func (s *DirectorySuite) TestExistsFallsBackToDatabaseOnMiss() {
	testutil.MarkRedisHealthy()
	u, _, err := user.Create(s.ctx, serializer.Data{"username": "alice", "password": "pw"})
	s.Require().NoError(err)

	// 模拟目录丢失成员
	s.Require().NoError(database.RDB.Del(s.ctx, user.KnownUsersKey).Err())

	exists, err := user.Exists(s.ctx, int64(u.ID))
	s.Require().NoError(err)
	s.True(exists)
}

func (s *DirectorySuite) TestWarmupReplacesStaleMembers() {
	s.Require().NoError(database.RDB.SAdd(s.ctx, user.KnownUsersKey, 404).Err())

	user.LockRepository()
	s.Require().NoError(user.WarmupCache())
	user.UnlockRepository()

	exists, err := database.RDB.Exists(s.ctx, user.KnownUsersKey).Result()
	s.Require().NoError(err)
	s.Zero(exists)
}
