package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name     string  `json:"name" validate:"required,max=10"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Nick     *string `json:"nick" validate:"omitnil,min=1"`
}

func TestValidateOK(t *testing.T) {
	err := Validate(signupForm{Name: "Al", Email: "al@x.com", Password: "12345678"})
	assert.NoError(t, err)
}

func TestValidateFieldMessages(t *testing.T) {
	empty := ""
	err := Validate(signupForm{Email: "nope", Password: "123", Nick: &empty})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, []string{"The name field is required."}, verr.Fields["name"])
	assert.Equal(t, []string{"The email field must be a valid email address."}, verr.Fields["email"])
	assert.Equal(t, []string{"The password field must be at least 8 characters."}, verr.Fields["password"])
	assert.Equal(t, []string{"The nick field is required."}, verr.Fields["nick"])
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "The given data was invalid.", NewValidationError().Error())

	one := FieldError("email", "The email has already been taken.")
	assert.Equal(t, "The email has already been taken.", one.Error())

	two := FieldError("name", "The name field is required.").Add("email", "The email field is required.")
	assert.Equal(t, "The email field is required. (and 1 more error)", two.Error())

	two.Add("email", "again")
	assert.Equal(t, "The email field is required. (and 2 more errors)", two.Error())
}

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{NotFound("Post"), http.StatusNotFound},
		{fmt.Errorf("wrap: %w", ErrNotFound), http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{FieldError("title", "x"), http.StatusUnprocessableEntity},
		{ErrConflict, http.StatusConflict},
		{&pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatusFromError(c.err), "%v", c.err)
	}
}

func TestRespondWithErr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/posts/1", nil)

	w := httptest.NewRecorder()
	RespondWithErr(w, r, NotFound("Post"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Post not found"}`, w.Body.String())

	w = httptest.NewRecorder()
	RespondWithErr(w, r, FieldError("email", "taken"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "taken", body.Message)
	assert.Equal(t, []string{"taken"}, body.Errors["email"])

	w = httptest.NewRecorder()
	RespondWithErr(w, r, errors.New("db exploded"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "exploded")
}
