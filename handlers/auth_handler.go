package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/errors"
	application "github.com/karansingh008/Tourizio/service"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type AuthHandler struct {
	service *application.AuthService
	tracer  trace.Tracer
}

func NewAuthHandler(service *application.AuthService, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *AuthHandler) Init(public, authenticated *mux.Router) {
	public.HandleFunc("/api/signup", handler.Signup).Methods("POST")
	public.HandleFunc("/api/login", handler.Login).Methods("POST")
	authenticated.HandleFunc("/api/logout", handler.Logout).Methods("GET")
}

func (handler *AuthHandler) Signup(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Signup")
	defer span.End()

	var user domain.User
	if err := user.FromJSON(req.Body); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	err := handler.service.Signup(ctx, &user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.AllFieldsRequired, errors.PasswordTooShortError, errors.InvalidRequestFormatError:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		case errors.UserExistsError:
			http.Error(writer, err.Error(), http.StatusConflict)
		default:
			log.Println("Signup error:", err)
			http.Error(writer, "Server error", http.StatusInternalServerError)
		}
		return
	}

	writer.WriteHeader(http.StatusCreated)
	jsonResponse(map[string]string{"message": "Signup successful"}, writer)
}

func (handler *AuthHandler) Login(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Login")
	defer span.End()

	var credentials domain.Credentials
	if err := decodeBody(req, &credentials); err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	token, session, err := handler.service.Login(ctx, &credentials)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.InvalidCredentials {
			http.Error(writer, err.Error(), http.StatusUnauthorized)
			return
		}
		log.Println("Login error:", err)
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	jsonResponse(map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"firstName":  session.FirstName,
			"lastName":   session.LastName,
			"email":      session.Email,
			"age":        session.Age,
			"profilePic": session.ProfilePic,
		},
	}, writer)
}

func (handler *AuthHandler) Logout(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Logout")
	defer span.End()

	session := SessionFromContext(ctx)

	if err := handler.service.Logout(ctx, session.ID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Println("Logout error:", err)
		http.Error(writer, "Server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(writer, req, "/auth", http.StatusFound)
}
