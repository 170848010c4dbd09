package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStore interface {
	Insert(ctx context.Context, booking *Booking) error
	Get(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	GetAllByUser(ctx context.Context, userID primitive.ObjectID) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) error
}
