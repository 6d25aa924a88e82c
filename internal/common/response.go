package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Message: message})
}

func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, MessageResponse{Message: message})
}

// RespondWithErr converts a service error into its JSON error response.
// Unclassified errors are logged and answered with a generic 500.
func RespondWithErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		RespondWithJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Message: verr.Error(), Errors: verr.Fields})
		return
	}

	code := HTTPStatusFromError(err)
	switch code {
	case http.StatusInternalServerError:
		log.Printf("ERROR: [%s] %s %s: %v", chiMiddleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
		RespondWithError(w, code, "Internal server error")
	case http.StatusUnauthorized:
		RespondWithError(w, code, "Unauthorized")
	case http.StatusForbidden:
		RespondWithError(w, code, "Forbidden")
	default:
		var nf *NotFoundError
		if errors.As(err, &nf) {
			RespondWithError(w, code, nf.Error())
			return
		}
		RespondWithError(w, code, err.Error())
	}
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
