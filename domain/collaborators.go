package domain

import "context"

// MailDispatcher is the email boundary. It reports success or failure and may
// fail independently of persistence; callers must not assume delivery.
type MailDispatcher interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// AvatarStorage stores uploaded profile images and serves them back by name.
type AvatarStorage interface {
	SaveImage(ctx context.Context, folderName, imageName string, imageContent []byte) error
	GetImageContent(ctx context.Context, imagePath string) ([]byte, error)
}
