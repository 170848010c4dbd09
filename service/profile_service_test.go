package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileService(store *MockUserStore, cache *MockSessionCache, mailer *MockMailDispatcher, files *MockAvatarStorage) *ProfileService {
	return NewProfileService(store, cache, mailer, files, testTracer)
}

func TestProfileService_UploadAvatar(t *testing.T) {
	store := &MockUserStore{}
	cache := &MockSessionCache{}
	files := &MockAvatarStorage{}
	service := newProfileService(store, cache, &MockMailDispatcher{}, files)
	session := testSession()

	content := []byte("png bytes")
	files.On("SaveImage", mock.Anything, "avatars", mock.AnythingOfType("string"), content).Return(nil)
	store.On("UpdateProfilePic", mock.Anything, session.UserID, mock.AnythingOfType("string")).Return(nil)
	cache.On("PostSession", mock.Anything, session).Return(nil)

	picPath, err := service.UploadAvatar(context.Background(), session, "me.png", "image/png", content)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(picPath, "/uploads/avatars/avatar-"))
	assert.True(t, strings.HasSuffix(picPath, ".png"))
	assert.Equal(t, picPath, session.ProfilePic)

	files.AssertExpectations(t)
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProfileService_UploadAvatar_Rejections(t *testing.T) {
	store := &MockUserStore{}
	files := &MockAvatarStorage{}
	service := newProfileService(store, &MockSessionCache{}, &MockMailDispatcher{}, files)
	session := testSession()

	_, err := service.UploadAvatar(context.Background(), session, "me.png", "image/png", nil)
	require.EqualError(t, err, errors.NoFileError)

	_, err = service.UploadAvatar(context.Background(), session, "me.pdf", "application/pdf", []byte("x"))
	require.EqualError(t, err, errors.NotAnImageError)

	tooBig := make([]byte, maxAvatarSize+1)
	_, err = service.UploadAvatar(context.Background(), session, "me.png", "image/png", tooBig)
	require.EqualError(t, err, errors.FileTooLargeError)

	files.AssertNotCalled(t, "SaveImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UpdateAge(t *testing.T) {
	store := &MockUserStore{}
	cache := &MockSessionCache{}
	service := newProfileService(store, cache, &MockMailDispatcher{}, &MockAvatarStorage{})
	session := testSession()

	store.On("UpdateAge", mock.Anything, session.UserID, 33).Return(nil)
	cache.On("PostSession", mock.Anything, session).Return(nil)

	require.NoError(t, service.UpdateAge(context.Background(), session, 33))
	assert.Equal(t, 33, session.Age)

	require.EqualError(t, service.UpdateAge(context.Background(), session, 0), errors.InvalidAgeError)
	require.EqualError(t, service.UpdateAge(context.Background(), session, 151), errors.InvalidAgeError)

	store.AssertExpectations(t)
}

func TestProfileService_InitiateEmailChange(t *testing.T) {
	store := &MockUserStore{}
	mailer := &MockMailDispatcher{}
	service := newProfileService(store, &MockSessionCache{}, mailer, &MockAvatarStorage{})
	session := testSession()

	var storedOTP string
	store.On("SetOTP", mock.Anything, session.UserID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedOTP = args.String(2)
		}).Return(nil)
	mailer.On("Send", mock.Anything, session.Email, "Security Verification", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, service.InitiateEmailChange(context.Background(), session))

	require.Len(t, storedOTP, 6)
	sentBody := mailer.Calls[0].Arguments.String(3)
	assert.Contains(t, sentBody, "<b>"+storedOTP+"</b>")
}

func TestProfileService_InitiateEmailChange_DispatchFailure(t *testing.T) {
	store := &MockUserStore{}
	mailer := &MockMailDispatcher{}
	service := newProfileService(store, &MockSessionCache{}, mailer, &MockAvatarStorage{})
	session := testSession()

	store.On("SetOTP", mock.Anything, session.UserID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
	mailer.On("Send", mock.Anything, session.Email, "Security Verification", mock.AnythingOfType("string")).
		Return(assert.AnError)

	err := service.InitiateEmailChange(context.Background(), session)
	require.EqualError(t, err, errors.MailDispatchError)

	// The code was stored before the send failed; the store is not rolled back.
	store.AssertCalled(t, "SetOTP", mock.Anything, session.UserID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"))
}

func TestProfileService_VerifyOwnerOTP(t *testing.T) {
	store := &MockUserStore{}
	cache := &MockSessionCache{}
	service := newProfileService(store, cache, &MockMailDispatcher{}, &MockAvatarStorage{})
	session := testSession()

	user := &domain.User{
		ID:         session.UserID,
		Email:      session.Email,
		OTP:        "123456",
		OTPExpires: time.Now().Add(5 * time.Minute),
	}

	store.On("Get", mock.Anything, session.UserID).Return(user, nil)
	store.On("ClearOTP", mock.Anything, session.UserID).Return(nil)
	cache.On("PostSession", mock.Anything, session).Return(nil)

	require.NoError(t, service.VerifyOwnerOTP(context.Background(), session, "123456"))
	assert.True(t, session.EmailChangeAuthorized)

	store.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProfileService_VerifyOwnerOTP_Rejections(t *testing.T) {
	store := &MockUserStore{}
	service := newProfileService(store, &MockSessionCache{}, &MockMailDispatcher{}, &MockAvatarStorage{})
	session := testSession()

	user := &domain.User{
		ID:         session.UserID,
		OTP:        "123456",
		OTPExpires: time.Now().Add(5 * time.Minute),
	}
	store.On("Get", mock.Anything, session.UserID).Return(user, nil)

	require.EqualError(t, service.VerifyOwnerOTP(context.Background(), session, "654321"), errors.InvalidOTPError)
	assert.False(t, session.EmailChangeAuthorized)

	user.OTPExpires = time.Now().Add(-time.Minute)
	require.EqualError(t, service.VerifyOwnerOTP(context.Background(), session, "123456"), errors.InvalidOTPError)

	user.OTP = ""
	user.OTPExpires = time.Now().Add(5 * time.Minute)
	require.EqualError(t, service.VerifyOwnerOTP(context.Background(), session, ""), errors.InvalidOTPError)

	store.AssertNotCalled(t, "ClearOTP", mock.Anything, mock.Anything)
}

func TestProfileService_FinalizeEmailChange(t *testing.T) {
	store := &MockUserStore{}
	cache := &MockSessionCache{}
	service := newProfileService(store, cache, &MockMailDispatcher{}, &MockAvatarStorage{})
	session := testSession()
	session.EmailChangeAuthorized = true

	store.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	store.On("UpdateEmail", mock.Anything, session.UserID, "new@example.com").Return(nil)
	cache.On("PostSession", mock.Anything, session).Return(nil)

	require.NoError(t, service.FinalizeEmailChange(context.Background(), session, "new@example.com"))

	assert.Equal(t, "new@example.com", session.Email)
	assert.False(t, session.EmailChangeAuthorized, "authorization is one-shot")

	store.AssertExpectations(t)
}

func TestProfileService_FinalizeEmailChange_NotAuthorized(t *testing.T) {
	store := &MockUserStore{}
	service := newProfileService(store, &MockSessionCache{}, &MockMailDispatcher{}, &MockAvatarStorage{})
	session := testSession()

	err := service.FinalizeEmailChange(context.Background(), session, "new@example.com")
	require.EqualError(t, err, errors.EmailChangeNotAuthorized)

	store.AssertNotCalled(t, "UpdateEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_FinalizeEmailChange_TakenEmailKeepsAuthorization(t *testing.T) {
	store := &MockUserStore{}
	service := newProfileService(store, &MockSessionCache{}, &MockMailDispatcher{}, &MockAvatarStorage{})
	session := testSession()
	session.EmailChangeAuthorized = true

	taken := &domain.User{Email: "new@example.com"}
	store.On("GetByEmail", mock.Anything, "new@example.com").Return(taken, nil)

	err := service.FinalizeEmailChange(context.Background(), session, "new@example.com")
	require.EqualError(t, err, errors.EmailAlreadyTaken)

	// The user may retry with a different address without re-verifying.
	assert.True(t, session.EmailChangeAuthorized)
	store.AssertNotCalled(t, "UpdateEmail", mock.Anything, mock.Anything, mock.Anything)
}
