package application

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/errors"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	avatarFolder  = "avatars"
	maxAvatarSize = 2 << 20

	otpTTL = 10 * time.Minute
)

type ProfileService struct {
	store  domain.UserStore
	cache  domain.SessionCache
	mailer domain.MailDispatcher
	files  domain.AvatarStorage
	tracer trace.Tracer
}

func NewProfileService(store domain.UserStore, cache domain.SessionCache, mailer domain.MailDispatcher, files domain.AvatarStorage, tracer trace.Tracer) *ProfileService {
	return &ProfileService{
		store:  store,
		cache:  cache,
		mailer: mailer,
		files:  files,
		tracer: tracer,
	}
}

// UploadAvatar stores the image and patches both the user document and the
// cached session, returning the public path of the new avatar.
func (service *ProfileService) UploadAvatar(ctx context.Context, session *domain.Session, fileName, contentType string, content []byte) (string, error) {
	ctx, span := service.tracer.Start(ctx, "ProfileService.UploadAvatar")
	defer span.End()

	if len(content) == 0 {
		return "", fmt.Errorf(errors.NoFileError)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf(errors.NotAnImageError)
	}
	if len(content) > maxAvatarSize {
		return "", fmt.Errorf(errors.FileTooLargeError)
	}

	imageName := fmt.Sprintf("avatar-%d%s", time.Now().UnixNano(), filepath.Ext(fileName))

	if err := service.files.SaveImage(ctx, avatarFolder, imageName, content); err != nil {
		span.SetStatus(codes.Error, "Error saving avatar")
		log.Println("Error saving avatar:", err)
		return "", fmt.Errorf(errors.UploadFailedError)
	}

	picPath := "/uploads/" + avatarFolder + "/" + imageName

	if err := service.store.UpdateProfilePic(ctx, session.UserID, picPath); err != nil {
		span.SetStatus(codes.Error, "Error updating profile pic")
		return "", err
	}

	session.ProfilePic = picPath
	if err := service.cache.PostSession(ctx, session); err != nil {
		span.SetStatus(codes.Error, "Error patching session")
		return "", err
	}

	return picPath, nil
}

func (service *ProfileService) UpdateAge(ctx context.Context, session *domain.Session, age int) error {
	ctx, span := service.tracer.Start(ctx, "ProfileService.UpdateAge")
	defer span.End()

	if age < 1 || age > 150 {
		return fmt.Errorf(errors.InvalidAgeError)
	}

	if err := service.store.UpdateAge(ctx, session.UserID, age); err != nil {
		span.SetStatus(codes.Error, "Error updating age")
		return err
	}

	session.Age = age
	return service.cache.PostSession(ctx, session)
}

// InitiateEmailChange stores a fresh one-time code on the user document and
// mails it to the current address. The code is written before dispatch, so a
// failed send leaves a valid code behind and the caller may retry delivery.
func (service *ProfileService) InitiateEmailChange(ctx context.Context, session *domain.Session) error {
	ctx, span := service.tracer.Start(ctx, "ProfileService.InitiateEmailChange")
	defer span.End()

	otp := fmt.Sprintf("%d", 100000+rand.Intn(900000))
	expires := time.Now().Add(otpTTL)

	if err := service.store.SetOTP(ctx, session.UserID, otp, expires); err != nil {
		span.SetStatus(codes.Error, "Error storing otp")
		return err
	}

	body := "<p>Your verification code is <b>" + otp + "</b></p>"
	if err := service.mailer.Send(ctx, session.Email, "Security Verification", body); err != nil {
		span.SetStatus(codes.Error, "Error dispatching otp mail")
		log.Println("Error dispatching otp mail:", err)
		return fmt.Errorf(errors.MailDispatchError)
	}

	return nil
}

// VerifyOwnerOTP consumes the stored code. On match the session gains a
// one-shot authorization for the finalize step.
func (service *ProfileService) VerifyOwnerOTP(ctx context.Context, session *domain.Session, otp string) error {
	ctx, span := service.tracer.Start(ctx, "ProfileService.VerifyOwnerOTP")
	defer span.End()

	user, err := service.store.Get(ctx, session.UserID)
	if err != nil {
		span.SetStatus(codes.Error, "Error fetching user")
		return err
	}
	if user == nil {
		return fmt.Errorf(errors.UnauthorizedError)
	}

	if user.OTP == "" || user.OTP != otp || time.Now().After(user.OTPExpires) {
		return fmt.Errorf(errors.InvalidOTPError)
	}

	if err := service.store.ClearOTP(ctx, session.UserID); err != nil {
		span.SetStatus(codes.Error, "Error clearing otp")
		return err
	}

	session.EmailChangeAuthorized = true
	return service.cache.PostSession(ctx, session)
}

// FinalizeEmailChange swaps the address. A taken address fails without
// consuming the authorization, so the user may retry with another one.
func (service *ProfileService) FinalizeEmailChange(ctx context.Context, session *domain.Session, newEmail string) error {
	ctx, span := service.tracer.Start(ctx, "ProfileService.FinalizeEmailChange")
	defer span.End()

	if !session.EmailChangeAuthorized {
		return fmt.Errorf(errors.EmailChangeNotAuthorized)
	}

	if newEmail == "" {
		return fmt.Errorf(errors.AllFieldsRequired)
	}

	existing, err := service.store.GetByEmail(ctx, newEmail)
	if err != nil {
		span.SetStatus(codes.Error, "Error checking email")
		return err
	}
	if existing != nil {
		return fmt.Errorf(errors.EmailAlreadyTaken)
	}

	if err := service.store.UpdateEmail(ctx, session.UserID, newEmail); err != nil {
		span.SetStatus(codes.Error, "Error updating email")
		return err
	}

	session.Email = newEmail
	session.EmailChangeAuthorized = false
	return service.cache.PostSession(ctx, session)
}
