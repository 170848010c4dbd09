package domain

import (
	"encoding/json"
	"io"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FirstName  string             `bson:"firstName" json:"firstName" validate:"required,onlyCharAndSpace"`
	LastName   string             `bson:"lastName" json:"lastName" validate:"required,onlyCharAndSpace"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Password   string             `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Age        int                `bson:"age,omitempty" json:"age,omitempty"`
	ProfilePic string             `bson:"profilePic" json:"profilePic"`

	// One-time code state for the email-change flow. TempEmail is kept for
	// schema compatibility but never written by the current flow.
	OTP        string    `bson:"otp,omitempty" json:"-"`
	OTPExpires time.Time `bson:"otpExpires,omitempty" json:"-"`
	TempEmail  string    `bson:"tempEmail,omitempty" json:"-"`
}

const DefaultProfilePic = "/images/default-avatar.png"

type Gender string

const (
	Male   = "Male"
	Female = "Female"
	Other  = "Other"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type Guest struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Age       int    `bson:"age" json:"age"`
	Gender    Gender `bson:"gender" json:"gender"`
}

type Booking struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	UserID      primitive.ObjectID `bson:"user" json:"user"`
	Destination string             `bson:"destination" json:"destination"`
	CheckIn     time.Time          `bson:"checkIn" json:"checkIn"`
	CheckOut    time.Time          `bson:"checkOut" json:"checkOut"`
	GuestsCount int                `bson:"guestsCount" json:"guestsCount"`
	TotalCost   string             `bson:"totalCost" json:"totalCost"`
	Guests      []Guest            `bson:"guests" json:"guests"`
	Status      BookingStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Destination is a static catalog entry, defined by configuration.
type Destination struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Image string `json:"image"`
	Days  string `json:"days"`
}

// Session is the per-visitor state kept in the session cache. It is a cache of
// a subset of User fields, patched with narrow updates after each successful
// persistence write, never a general-purpose mirror.
type Session struct {
	ID                    string             `json:"id"`
	UserID                primitive.ObjectID `json:"userId"`
	FirstName             string             `json:"firstName"`
	LastName              string             `json:"lastName"`
	Email                 string             `json:"email"`
	Age                   int                `json:"age,omitempty"`
	ProfilePic            string             `json:"profilePic"`
	EmailChangeAuthorized bool               `json:"emailChangeAuthorized"`
}

type Claims struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BookingRequest is the submission payload. Numeric fields arrive as strings,
// the way the booking form posts them.
type BookingRequest struct {
	Destination string         `json:"destination"`
	CheckIn     string         `json:"checkin"`
	CheckOut    string         `json:"checkout"`
	GuestsCount string         `json:"guestsCount"`
	Guests      []GuestRequest `json:"guests"`
	Total       string         `json:"total"`
}

type GuestRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       string `json:"age"`
	Gender    Gender `json:"gender"`
}

type CancelBookingRequest struct {
	BookingID string `json:"bookingId"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

type FinalizeEmailRequest struct {
	NewEmail string `json:"newEmail"`
}

type UpdateAgeRequest struct {
	Age json.Number `json:"age"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (user *User) ValidateUser() error {
	validate := validator.New()

	err := validate.RegisterValidation("onlyCharAndSpace", onlyCharactersAndSpacesField)
	if err != nil {
		return err
	}

	return validate.Struct(user)
}

// Allows only letters and spaces, matching the signup form restriction.
func onlyCharactersAndSpacesField(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[a-zA-Z\s]+$`)
	return re.MatchString(fl.Field().String())
}

func (user *User) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(user)
}
