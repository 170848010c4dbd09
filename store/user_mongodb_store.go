package store

import (
	"context"
	"log"
	"time"

	"github.com/karansingh008/Tourizio/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DATABASE        = "tourizio"
	USER_COLLECTION = "users"
)

type UserMongoDBStore struct {
	users  *mongo.Collection
	tracer trace.Tracer
}

func NewUserMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.UserStore {
	users := client.Database(DATABASE).Collection(USER_COLLECTION)
	return &UserMongoDBStore{
		users:  users,
		tracer: tracer,
	}
}

func (store *UserMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	return store.filterOne(ctx, span, filter)
}

func (store *UserMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.GetByEmail")
	defer span.End()

	filter := bson.M{"email": email}
	return store.filterOne(ctx, span, filter)
}

func (store *UserMongoDBStore) Insert(ctx context.Context, user *domain.User) error {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.Insert")
	defer span.End()

	user.ID = primitive.NewObjectID()
	result, err := store.users.InsertOne(ctx, user)
	if err != nil {
		span.SetStatus(codes.Error, "Error inserting user")
		return err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (store *UserMongoDBStore) UpdateProfilePic(ctx context.Context, id primitive.ObjectID, path string) error {
	return store.updateFields(ctx, "UserMongoDBStore.UpdateProfilePic", id, bson.M{"profilePic": path})
}

func (store *UserMongoDBStore) UpdateAge(ctx context.Context, id primitive.ObjectID, age int) error {
	return store.updateFields(ctx, "UserMongoDBStore.UpdateAge", id, bson.M{"age": age})
}

func (store *UserMongoDBStore) UpdateEmail(ctx context.Context, id primitive.ObjectID, email string) error {
	return store.updateFields(ctx, "UserMongoDBStore.UpdateEmail", id, bson.M{"email": email})
}

func (store *UserMongoDBStore) SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error {
	return store.updateFields(ctx, "UserMongoDBStore.SetOTP", id, bson.M{"otp": otp, "otpExpires": expires})
}

func (store *UserMongoDBStore) ClearOTP(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.ClearOTP")
	defer span.End()

	update := bson.M{"$unset": bson.M{"otp": "", "otpExpires": ""}}
	_, err := store.users.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		span.SetStatus(codes.Error, "Error clearing otp")
		log.Println("Error clearing otp:", err)
	}
	return err
}

func (store *UserMongoDBStore) updateFields(ctx context.Context, spanName string, id primitive.ObjectID, fields bson.M) error {
	ctx, span := store.tracer.Start(ctx, spanName)
	defer span.End()

	_, err := store.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		span.SetStatus(codes.Error, "Error updating user")
		log.Println("Error updating user:", err)
	}
	return err
}

func (store *UserMongoDBStore) filterOne(ctx context.Context, span trace.Span, filter interface{}) (*domain.User, error) {
	result := store.users.FindOne(ctx, filter)

	var user domain.User
	if err := result.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		span.SetStatus(codes.Error, "Error decoding user")
		log.Println("Error decoding user:", err)
		return nil, err
	}

	return &user, nil
}
