package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/errors"
	application "github.com/karansingh008/Tourizio/service"
	"github.com/karansingh008/Tourizio/wizard"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type BookingHandler struct {
	service *application.BookingService
	cache   domain.SessionCache
	tracer  trace.Tracer
}

func NewBookingHandler(service *application.BookingService, cache domain.SessionCache, tracer trace.Tracer) *BookingHandler {
	return &BookingHandler{
		service: service,
		cache:   cache,
		tracer:  tracer,
	}
}

func (handler *BookingHandler) Init(public, authenticated *mux.Router) {
	public.HandleFunc("/api/destinations", handler.GetDestinations).Methods("GET")

	authenticated.HandleFunc("/api/contact", handler.Contact).Methods("POST")

	authenticated.HandleFunc("/api/wizard/details", handler.WizardDetails).Methods("POST")
	authenticated.HandleFunc("/api/wizard/advance", handler.WizardAdvance).Methods("POST")
	authenticated.HandleFunc("/api/wizard/edit", handler.WizardEdit).Methods("POST")
	authenticated.HandleFunc("/api/wizard/proceed", handler.WizardProceed).Methods("POST")
	authenticated.HandleFunc("/api/wizard/submit", handler.WizardSubmit).Methods("POST")

	authenticated.HandleFunc("/api/bookings", handler.SubmitBooking).Methods("POST")
	authenticated.HandleFunc("/api/my-bookings", handler.GetMyBookings).Methods("GET")
	authenticated.HandleFunc("/api/cancel-booking", handler.CancelBooking).Methods("POST")
}

func (handler *BookingHandler) GetDestinations(writer http.ResponseWriter, req *http.Request) {
	_, span := handler.tracer.Start(req.Context(), "BookingHandler.GetDestinations")
	defer span.End()

	jsonResponse(application.Destinations(), writer)
}

func (handler *BookingHandler) Contact(writer http.ResponseWriter, req *http.Request) {
	_, span := handler.tracer.Start(req.Context(), "BookingHandler.Contact")
	defer span.End()

	var request domain.ContactRequest
	if err := decodeBody(req, &request); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if request.Name == "" || request.Email == "" || request.Message == "" {
		http.Error(writer, errors.AllFieldsRequired, http.StatusBadRequest)
		return
	}

	log.Printf("[Contact Form] From: %s (%s) - Message: %s", request.Name, request.Email, request.Message)
	jsonResponse(map[string]string{"message": "Message received"}, writer)
}

type wizardDetailsRequest struct {
	Destination *string          `json:"destination"`
	CheckIn     *string          `json:"checkin"`
	CheckOut    *string          `json:"checkout"`
	GuestsCount *string          `json:"guestsCount"`
	Guests      []wizardGuestRow `json:"guests"`
}

type wizardGuestRow struct {
	Index int `json:"index"`
	wizard.GuestRow
}

// wizardView is what every wizard endpoint returns: the current state, the
// recomputed total and any inline age messages.
type wizardView struct {
	*wizard.Wizard
	Total     string            `json:"total"`
	AgeErrors map[string]string `json:"ageErrors,omitempty"`
}

func newWizardView(w *wizard.Wizard) wizardView {
	view := wizardView{Wizard: w}

	if quote, ok := w.Quote(); ok {
		view.Total = quote.Display()
	}

	ageErrors := make(map[string]string)
	for i, guest := range w.Guests {
		if message := wizard.AgeFieldError(guest.Age); message != "" {
			ageErrors[strconv.Itoa(i)] = message
		}
	}
	if len(ageErrors) > 0 {
		view.AgeErrors = ageErrors
	}

	return view
}

func (handler *BookingHandler) loadWizard(req *http.Request, sessionID string) (*wizard.Wizard, error) {
	payload, err := handler.cache.GetWizard(req.Context(), sessionID)
	if err != nil {
		return nil, err
	}
	if payload == "" {
		return wizard.New(), nil
	}

	var w wizard.Wizard
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		// A corrupt entry is discarded; the visitor starts over.
		log.Println("Error unmarshaling wizard state:", err)
		return wizard.New(), nil
	}
	return &w, nil
}

func (handler *BookingHandler) saveWizard(req *http.Request, sessionID string, w *wizard.Wizard) error {
	payload, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return handler.cache.PostWizard(req.Context(), sessionID, string(payload))
}

func (handler *BookingHandler) WizardDetails(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.WizardDetails")
	defer span.End()

	session := SessionFromContext(ctx)

	var request wizardDetailsRequest
	if err := decodeBody(req, &request); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	w, err := handler.loadWizard(req, session.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	if w.Step != wizard.StepDetails {
		http.Error(writer, "Details can only be edited on the Details step", http.StatusConflict)
		return
	}

	if request.Destination != nil {
		destination, ok := application.FindDestination(*request.Destination)
		if !ok {
			http.Error(writer, "Please select a destination.", http.StatusBadRequest)
			return
		}
		w.SetDestination(destination.ID, destination.Price)
	}

	if request.CheckIn != nil || request.CheckOut != nil {
		checkIn, checkOut := w.CheckIn, w.CheckOut
		if request.CheckIn != nil {
			checkIn = *request.CheckIn
		}
		if request.CheckOut != nil {
			checkOut = *request.CheckOut
		}
		w.SetDates(checkIn, checkOut)
	}

	if request.GuestsCount != nil {
		w.SetGuestsCount(*request.GuestsCount)
	}

	for _, row := range request.Guests {
		if err := w.SetGuest(row.Index, row.GuestRow); err != nil {
			http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
			return
		}
	}

	if err := handler.saveWizard(req, session.ID, w); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(newWizardView(w), writer)
}

func (handler *BookingHandler) WizardAdvance(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.WizardAdvance")
	defer span.End()

	session := SessionFromContext(ctx)

	w, err := handler.loadWizard(req, session.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	if _, err := w.Advance(); err != nil {
		handler.stepErrorResponse(writer, span, err)
		return
	}

	if err := handler.saveWizard(req, session.ID, w); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(newWizardView(w), writer)
}

func (handler *BookingHandler) WizardEdit(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.WizardEdit")
	defer span.End()

	session := SessionFromContext(ctx)

	w, err := handler.loadWizard(req, session.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	if err := w.Edit(); err != nil {
		http.Error(writer, err.Error(), http.StatusConflict)
		return
	}

	if err := handler.saveWizard(req, session.ID, w); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(newWizardView(w), writer)
}

func (handler *BookingHandler) WizardProceed(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.WizardProceed")
	defer span.End()

	session := SessionFromContext(ctx)

	w, err := handler.loadWizard(req, session.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	if err := w.Proceed(); err != nil {
		http.Error(writer, err.Error(), http.StatusConflict)
		return
	}

	if err := handler.saveWizard(req, session.ID, w); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(newWizardView(w), writer)
}

func (handler *BookingHandler) WizardSubmit(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.WizardSubmit")
	defer span.End()

	session := SessionFromContext(ctx)

	var card wizard.CardInput
	if err := decodeBody(req, &card); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	w, err := handler.loadWizard(req, session.ID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	request, err := w.Submit(card, time.Now())
	if err != nil {
		handler.stepErrorResponse(writer, span, err)
		return
	}

	booking, err := handler.service.Submit(ctx, session, request)
	if err != nil {
		handler.submitErrorResponse(writer, span, err)
		return
	}

	// The draft is spent once the booking lands.
	if err := handler.cache.DelWizard(ctx, session.ID); err != nil {
		log.Println("Error discarding wizard state:", err)
	}

	writer.WriteHeader(http.StatusCreated)
	jsonResponse(booking, writer)
}

func (handler *BookingHandler) SubmitBooking(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.SubmitBooking")
	defer span.End()

	session := SessionFromContext(ctx)

	var request domain.BookingRequest
	if err := decodeBody(req, &request); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	booking, err := handler.service.Submit(ctx, session, &request)
	if err != nil {
		handler.submitErrorResponse(writer, span, err)
		return
	}

	writer.WriteHeader(http.StatusCreated)
	jsonResponse(booking, writer)
}

func (handler *BookingHandler) GetMyBookings(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.GetMyBookings")
	defer span.End()

	session := SessionFromContext(ctx)

	bookings, err := handler.service.GetAllByUser(ctx, session)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Println("GetMyBookings error:", err)
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	jsonResponse(bookings, writer)
}

func (handler *BookingHandler) CancelBooking(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.CancelBooking")
	defer span.End()

	session := SessionFromContext(ctx)

	var request domain.CancelBookingRequest
	if err := decodeBody(req, &request); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := handler.service.Cancel(ctx, session, request.BookingID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.InvalidRequestFormatError:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		case errors.UnauthorizedError:
			http.Error(writer, err.Error(), http.StatusForbidden)
		case errors.BookingAlreadyCancelled:
			http.Error(writer, err.Error(), http.StatusConflict)
		case errors.CancellationExpired:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		default:
			log.Println("CancelBooking error:", err)
			http.Error(writer, "Server error", http.StatusInternalServerError)
		}
		return
	}

	jsonResponse(map[string]string{"message": "Booking cancelled"}, writer)
}

func (handler *BookingHandler) stepErrorResponse(writer http.ResponseWriter, span trace.Span, err error) {
	if stepErr, ok := err.(*wizard.StepError); ok {
		writer.WriteHeader(http.StatusBadRequest)
		jsonResponse(stepErr, writer)
		return
	}
	span.SetStatus(codes.Error, err.Error())
	http.Error(writer, err.Error(), http.StatusConflict)
}

func (handler *BookingHandler) submitErrorResponse(writer http.ResponseWriter, span trace.Span, err error) {
	span.SetStatus(codes.Error, err.Error())
	switch err.Error() {
	case errors.MissingBookingDetails, errors.GuestCountError,
		errors.GuestListMismatchError, errors.InvalidDateRangeError:
		http.Error(writer, err.Error(), http.StatusBadRequest)
	default:
		log.Println("Booking submit error:", err)
		http.Error(writer, "Server error", http.StatusInternalServerError)
	}
}
