package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/SscSPs/posync/internal/core/domain"
	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/core/services"
	"github.com/SscSPs/posync/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(now time.Time) domain.Session {
	args := m.Called(now)
	return args.Get(0).(domain.Session)
}

func (m *MockSessionRepository) Get(sessionID string, now time.Time) (domain.Session, portsrepo.RecordStoreFacade, error) {
	args := m.Called(sessionID, now)
	if args.Get(1) == nil {
		return args.Get(0).(domain.Session), nil, args.Error(2)
	}
	return args.Get(0).(domain.Session), args.Get(1).(portsrepo.RecordStoreFacade), args.Error(2)
}

func (m *MockSessionRepository) End(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockSessionRepository) Sweep(cutoff time.Time) []string {
	args := m.Called(cutoff)
	return args.Get(0).([]string)
}

func (m *MockSessionRepository) Len() int {
	args := m.Called()
	return args.Int(0)
}

// --- Test Suite ---
type SessionServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	mockRepo *MockSessionRepository
	service  portssvc.SessionSvcFacade
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	suite.mockRepo = new(MockSessionRepository)
	suite.service = services.NewSessionService(suite.mockRepo,
		services.WithSessionClock(func() time.Time { return suite.now }))
}

func (suite *SessionServiceTestSuite) TestCreateSession() {
	expected := domain.Session{SessionID: "s-1", CreatedAt: suite.now, LastSeenAt: suite.now}
	suite.mockRepo.On("Create", suite.now).Return(expected).Once()

	session := suite.service.CreateSession(suite.ctx)

	suite.Equal(expected, session)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestTouchSession_NotFound() {
	notFound := fmt.Errorf("%w: s-2", apperrors.ErrSessionNotFound)
	suite.mockRepo.On("Get", "s-2", suite.now).Return(domain.Session{}, nil, notFound).Once()

	err := suite.service.TouchSession(suite.ctx, "s-2")

	suite.ErrorIs(err, apperrors.ErrSessionNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestEndSession() {
	suite.mockRepo.On("End", "s-1").Return(nil).Once()
	suite.mockRepo.On("End", "s-1").Return(apperrors.ErrSessionNotFound).Once()

	suite.NoError(suite.service.EndSession(suite.ctx, "s-1"))
	suite.ErrorIs(suite.service.EndSession(suite.ctx, "s-1"), apperrors.ErrSessionNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestResetSession_ClearsStore() {
	store := memory.NewRecordStore()
	_, err := store.AddLineItem(domain.Expenses, domain.NewCashLineItem(dec("10"), "tea"))
	suite.Require().NoError(err)
	suite.mockRepo.On("Get", "s-1", suite.now).Return(domain.Session{SessionID: "s-1"}, store, nil).Once()

	suite.Require().NoError(suite.service.ResetSession(suite.ctx, "s-1"))

	items, err := store.LineItems(domain.Expenses)
	suite.Require().NoError(err)
	suite.Empty(items)
}

func (suite *SessionServiceTestSuite) TestActiveSessions() {
	suite.mockRepo.On("Len").Return(3).Once()
	suite.Equal(3, suite.service.ActiveSessions(suite.ctx))
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
