package store

import (
	"context"
	"log"

	"github.com/karansingh008/Tourizio/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const BOOKING_COLLECTION = "bookings"

type BookingMongoDBStore struct {
	bookings *mongo.Collection
	tracer   trace.Tracer
}

func NewBookingMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.BookingStore {
	bookings := client.Database(DATABASE).Collection(BOOKING_COLLECTION)
	return &BookingMongoDBStore{
		bookings: bookings,
		tracer:   tracer,
	}
}

func (store *BookingMongoDBStore) Insert(ctx context.Context, booking *domain.Booking) error {
	ctx, span := store.tracer.Start(ctx, "BookingMongoDBStore.Insert")
	defer span.End()

	booking.ID = primitive.NewObjectID()
	result, err := store.bookings.InsertOne(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, "Error inserting booking")
		return err
	}
	booking.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (store *BookingMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingMongoDBStore.Get")
	defer span.End()

	result := store.bookings.FindOne(ctx, bson.M{"_id": id})

	var booking domain.Booking
	if err := result.Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		span.SetStatus(codes.Error, "Error decoding booking")
		log.Println("Error decoding booking:", err)
		return nil, err
	}

	return &booking, nil
}

// GetAllByUser returns the user's bookings, newest first.
func (store *BookingMongoDBStore) GetAllByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingMongoDBStore.GetAllByUser")
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := store.bookings.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		span.SetStatus(codes.Error, "Error fetching bookings")
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (store *BookingMongoDBStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus) error {
	ctx, span := store.tracer.Start(ctx, "BookingMongoDBStore.UpdateStatus")
	defer span.End()

	update := bson.M{"$set": bson.M{"status": status}}
	_, err := store.bookings.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		span.SetStatus(codes.Error, "Error updating booking status")
		log.Println("Error updating booking status:", err)
	}
	return err
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) (bookings []*domain.Booking, err error) {
	for cursor.Next(ctx) {
		var booking domain.Booking
		err = cursor.Decode(&booking)
		if err != nil {
			return
		}
		bookings = append(bookings, &booking)
	}
	err = cursor.Err()
	return
}
