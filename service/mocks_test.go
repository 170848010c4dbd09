package application

import (
	"context"
	"time"

	"github.com/karansingh008/Tourizio/domain"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

// MockUserStore is a mock implementation of domain.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Insert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) UpdateProfilePic(ctx context.Context, id primitive.ObjectID, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockUserStore) UpdateAge(ctx context.Context, id primitive.ObjectID, age int) error {
	args := m.Called(ctx, id, age)
	return args.Error(0)
}

func (m *MockUserStore) UpdateEmail(ctx context.Context, id primitive.ObjectID, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *MockUserStore) SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error {
	args := m.Called(ctx, id, otp, expires)
	return args.Error(0)
}

func (m *MockUserStore) ClearOTP(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingStore is a mock implementation of domain.BookingStore
type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Insert(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) GetAllByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockSessionCache is a mock implementation of domain.SessionCache
type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) PostSession(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionCache) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionCache) DelSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionCache) PostWizard(ctx context.Context, sessionID string, payload string) error {
	args := m.Called(ctx, sessionID, payload)
	return args.Error(0)
}

func (m *MockSessionCache) GetWizard(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionCache) DelWizard(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockMailDispatcher is a mock implementation of domain.MailDispatcher
type MockMailDispatcher struct {
	mock.Mock
}

func (m *MockMailDispatcher) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// MockAvatarStorage is a mock implementation of domain.AvatarStorage
type MockAvatarStorage struct {
	mock.Mock
}

func (m *MockAvatarStorage) SaveImage(ctx context.Context, folderName, imageName string, imageContent []byte) error {
	args := m.Called(ctx, folderName, imageName, imageContent)
	return args.Error(0)
}

func (m *MockAvatarStorage) GetImageContent(ctx context.Context, imagePath string) ([]byte, error) {
	args := m.Called(ctx, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
