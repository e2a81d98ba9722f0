package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aussiebroadwan/tweetbook/internal/identity/service"
	"github.com/aussiebroadwan/tweetbook/pkg/authsdk"
	"github.com/aussiebroadwan/tweetbook/pkg/httpx"
	"github.com/aussiebroadwan/tweetbook/pkg/slogx"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON decodes and validates the body into dst. On failure it writes the
// response and returns false.
func bindJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		authsdk.ErrInvalidContentType.WriteError(w)
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		httpx.WriteErrors(w, http.StatusBadRequest, validationMessages(err)...)
		return false
	}
	return true
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("'%s' must not be empty.", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("'%s' is not a valid email address.", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("'%s' must be at most %s characters.", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("'%s' is invalid.", fe.Field()))
		}
	}
	return msgs
}

// writeServiceError maps service errors to responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrTransientStoreFailure):
		log.Warn("store unavailable", "err", err)
		w.Header().Set("Retry-After", "5")
		authsdk.ErrServiceUnavailable.WriteError(w)
	case errors.Is(err, service.ErrPostNotFound):
		httpx.WriteErrors(w, http.StatusNotFound, service.Message(err))
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrInvalidPostName):
		httpx.WriteErrors(w, http.StatusBadRequest, service.Message(err))
	case errors.Is(err, service.ErrUnknownUser):
		httpx.WriteErrors(w, http.StatusUnauthorized, service.Message(err))
	default:
		log.Error("request failed", "err", err)
		authsdk.ErrInternal.WriteError(w)
	}
}
