package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/errors"
	application "github.com/karansingh008/Tourizio/service"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Parsed form bodies up to 4MB; the avatar itself is checked against its own
// limit in the service.
const maxUploadMemory = 4 << 20

type ProfileHandler struct {
	service *application.ProfileService
	files   domain.AvatarStorage
	tracer  trace.Tracer
}

func NewProfileHandler(service *application.ProfileService, files domain.AvatarStorage, tracer trace.Tracer) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		files:   files,
		tracer:  tracer,
	}
}

func (handler *ProfileHandler) Init(public, authenticated *mux.Router) {
	public.HandleFunc("/uploads/{imagePath:.+}", handler.ServeAvatar).Methods("GET")

	authenticated.HandleFunc("/api/profile/avatar", handler.UploadAvatar).Methods("POST")
	authenticated.HandleFunc("/api/profile/age", handler.UpdateAge).Methods("POST")
	authenticated.HandleFunc("/api/profile/email/initiate", handler.InitiateEmailChange).Methods("POST")
	authenticated.HandleFunc("/api/profile/email/verify", handler.VerifyOTP).Methods("POST")
	authenticated.HandleFunc("/api/profile/email/finalize", handler.FinalizeEmailChange).Methods("POST")
}

func (handler *ProfileHandler) UploadAvatar(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.UploadAvatar")
	defer span.End()

	session := SessionFromContext(ctx)

	if err := req.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(writer, errors.NoFileError, http.StatusBadRequest)
		return
	}

	file, header, err := req.FormFile("avatar")
	if err != nil {
		http.Error(writer, errors.NoFileError, http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Println("Error reading upload:", err)
		http.Error(writer, errors.UploadFailedError, http.StatusInternalServerError)
		return
	}

	picPath, err := handler.service.UploadAvatar(ctx, session, header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.NoFileError, errors.NotAnImageError, errors.FileTooLargeError:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		default:
			http.Error(writer, errors.UploadFailedError, http.StatusInternalServerError)
		}
		return
	}

	jsonResponse(map[string]string{"profilePic": picPath}, writer)
}

func (handler *ProfileHandler) ServeAvatar(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.ServeAvatar")
	defer span.End()

	vars := mux.Vars(req)
	imagePath := vars["imagePath"]

	content, err := handler.files.GetImageContent(ctx, imagePath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Not found", http.StatusNotFound)
		return
	}

	writer.Header().Set("Content-Type", http.DetectContentType(content))
	writer.Write(content)
}

func (handler *ProfileHandler) UpdateAge(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.UpdateAge")
	defer span.End()

	session := SessionFromContext(ctx)

	var request domain.UpdateAgeRequest
	if err := decodeBody(req, &request); err != nil {
		http.Error(writer, errors.InvalidAgeError, http.StatusBadRequest)
		return
	}

	age, err := request.Age.Int64()
	if err != nil {
		http.Error(writer, errors.InvalidAgeError, http.StatusBadRequest)
		return
	}

	if err := handler.service.UpdateAge(ctx, session, int(age)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.InvalidAgeError {
			http.Error(writer, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("UpdateAge error:", err)
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(map[string]interface{}{"age": session.Age}, writer)
}

func (handler *ProfileHandler) InitiateEmailChange(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.InitiateEmailChange")
	defer span.End()

	session := SessionFromContext(ctx)

	if err := handler.service.InitiateEmailChange(ctx, session); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.MailDispatchError {
			http.Error(writer, err.Error(), http.StatusBadGateway)
			return
		}
		log.Println("InitiateEmailChange error:", err)
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(map[string]string{"message": "OTP sent to your current email"}, writer)
}

func (handler *ProfileHandler) VerifyOTP(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.VerifyOTP")
	defer span.End()

	session := SessionFromContext(ctx)

	var request domain.VerifyOTPRequest
	if err := decodeBody(req, &request); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := handler.service.VerifyOwnerOTP(ctx, session, request.OTP); err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.InvalidOTPError:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		case errors.UnauthorizedError:
			http.Error(writer, err.Error(), http.StatusUnauthorized)
		default:
			log.Println("VerifyOTP error:", err)
			http.Error(writer, "Server error", http.StatusInternalServerError)
		}
		return
	}

	jsonResponse(map[string]string{"message": "Verified"}, writer)
}

func (handler *ProfileHandler) FinalizeEmailChange(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.FinalizeEmailChange")
	defer span.End()

	session := SessionFromContext(ctx)

	var request domain.FinalizeEmailRequest
	if err := decodeBody(req, &request); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := handler.service.FinalizeEmailChange(ctx, session, request.NewEmail); err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.EmailChangeNotAuthorized:
			http.Error(writer, err.Error(), http.StatusForbidden)
		case errors.EmailAlreadyTaken, errors.AllFieldsRequired:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		default:
			log.Println("FinalizeEmailChange error:", err)
			http.Error(writer, "Server error", http.StatusInternalServerError)
		}
		return
	}

	jsonResponse(map[string]string{"email": session.Email}, writer)
}
