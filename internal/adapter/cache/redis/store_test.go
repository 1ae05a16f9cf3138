package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	cacheredis "taskapi/internal/adapter/cache/redis"
	"taskapi/internal/core/port"
)

type RedisStoreTestSuite struct {
	suite.Suite
	container testcontainers.Container
	store     port.CacheRepository
}

func (s *RedisStoreTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("redis suite needs docker")
	}

	testcontainers.SkipIfProviderIsNotHealthy(s.T())

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
	})
	s.Require().NoError(err)

	s.container = container

	host, _ := container.Host(ctx)
	mapped, _ := container.MappedPort(ctx, "6379")

	client := cacheredis.NewClient(cacheredis.Config{Addr: fmt.Sprintf("%s:%s", host, mapped.Port())})
	s.store = cacheredis.NewStore(client, "test:")
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func TestRedisStoreTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) TestSetGetDelete() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, "absent")
	Expect(err).To(MatchError(port.ErrCacheMiss))

	Expect(s.store.Set(ctx, "key", []byte("value"), time.Minute)).To(Succeed())

	got, err := s.store.Get(ctx, "key")
	Expect(err).ToNot(HaveOccurred())
	Expect(string(got)).To(Equal("value"))

	Expect(s.store.Delete(ctx, "key")).To(Succeed())

	_, err = s.store.Get(ctx, "key")
	Expect(err).To(MatchError(port.ErrCacheMiss))
}
