package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/KostiukVM/BlogAPI/internal/api/middleware"
	"github.com/KostiukVM/BlogAPI/internal/common"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. An empty body leaves dst at its
// zero value so that validation reports the missing fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
	return false
}

func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

// respond shapes a payload through present and writes it with code.
func respond[T any, R any](w http.ResponseWriter, r *http.Request, code int, v T, present func(T) (R, error)) {
	out, err := present(v)
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	common.RespondWithJSON(w, code, out)
}
