package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, user *User) error
	UpdateProfilePic(ctx context.Context, id primitive.ObjectID, path string) error
	UpdateAge(ctx context.Context, id primitive.ObjectID, age int) error
	UpdateEmail(ctx context.Context, id primitive.ObjectID, email string) error
	SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error
	ClearOTP(ctx context.Context, id primitive.ObjectID) error
}
