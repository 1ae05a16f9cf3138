package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"taskapi/internal/adapter/database/sqlite/repository"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
	. "taskapi/pkg/test"
	"taskapi/pkg/test/factory"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	UserRepo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.UserRepo = repository.NewUserRepository(InitTestDB(), nil)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestRepository_AddAndLookups() {
	user := factory.NewUser(map[string]any{"Username": "alice"})

	_, err := s.UserRepo.Add(context.Background(), user)
	Expect(err).To(BeNil())

	byID, err := s.UserRepo.Get(context.Background(), user.ID())
	Expect(err).To(BeNil())
	Expect(byID.Record()).To(Equal(user.Record()))

	byName, err := s.UserRepo.GetByUsername(context.Background(), "alice")
	Expect(err).To(BeNil())
	Expect(byName.ID()).To(Equal(user.ID()))

	exists, _ := s.UserRepo.Exists(context.Background(), user.ID())
	Expect(exists).To(BeTrue())

	taken, _ := s.UserRepo.UsernameExists(context.Background(), "alice")
	Expect(taken).To(BeTrue())
}

func (s *UserRepositoryTestSuite) TestRepository_Absent() {
	byID, err := s.UserRepo.Get(context.Background(), uuid.New())
	Expect(err).To(BeNil())
	Expect(byID).To(BeNil())

	byName, err := s.UserRepo.GetByUsername(context.Background(), "nobody")
	Expect(err).To(BeNil())
	Expect(byName).To(BeNil())

	taken, err := s.UserRepo.UsernameExists(context.Background(), "nobody")
	Expect(err).To(BeNil())
	Expect(taken).To(BeFalse())
}

func (s *UserRepositoryTestSuite) TestRepository_DuplicateUsername() {
	_, err := s.UserRepo.Add(context.Background(), factory.NewUser(map[string]any{"Username": "alice"}))
	Expect(err).To(BeNil())

	_, err = s.UserRepo.Add(context.Background(), factory.NewUser(map[string]any{"Username": "alice"}))

	assert.True(s.T(), domain.IsConflict(err))
}
