//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	client    *redis.Client
}

func (s *RedisIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	client, err := NewRedisClient(s.ctx, endpoint, "", 0)
	s.Require().NoError(err)
	s.client = client
}

func (s *RedisIntegrationSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RedisIntegrationSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(s.ctx).Err())
}

func TestRedisIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RedisIntegrationSuite))
}

func (s *RedisIntegrationSuite) TestSetGet() {
	c := NewRedis(s.client, "test:")

	s.Require().NoError(c.Set(s.ctx, "k", payload{Name: "x", Count: 1}, time.Minute))

	var got payload
	ok, err := c.Get(s.ctx, "k", &got)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(payload{Name: "x", Count: 1}, got)

	ttl, err := s.client.TTL(s.ctx, "test:k").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	ok, err = c.Get(s.ctx, "missing", &got)
	s.NoError(err)
	s.False(ok)
}

func (s *RedisIntegrationSuite) TestClearOnlyTouchesPrefix() {
	c := NewRedis(s.client, "test:")

	for i := 0; i < 250; i++ {
		s.Require().NoError(c.Set(s.ctx, Key("item", i), i, time.Minute))
	}
	s.Require().NoError(s.client.Set(s.ctx, "foreign", "keep", 0).Err())

	s.Require().NoError(c.Clear(s.ctx))

	keys, err := s.client.Keys(s.ctx, "*").Result()
	s.Require().NoError(err)
	s.Equal([]string{"foreign"}, keys)
}
