package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"flightdesk/airline/internal/constants"
	"flightdesk/airline/internal/logging"
	"flightdesk/airline/internal/models/dtos/responses"
	"flightdesk/airline/internal/services"
	"flightdesk/airline/internal/validation"

	"github.com/go-chi/chi/v5"
)

var errInvalidBody = errors.New(constants.MsgInvalidBody)

func writeJSON[T any](w http.ResponseWriter, statusCode int, resp responses.APIResponse[T]) {
	resp.Timestamp = time.Now().UTC()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	writeJSON(w, statusCode, responses.APIResponse[T]{
		Status: string(constants.APIStatusOk),
		Data:   data,
	})
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, responses.APIResponse[any]{
		Status: string(constants.APIStatusError),
		Error:  message,
	})
}

func respondWithValidation(w http.ResponseWriter, verr *services.ValidationError) {
	writeJSON(w, http.StatusBadRequest, responses.APIResponse[any]{
		Status: string(constants.APIStatusError),
		Error:  constants.MsgValidationFailed,
		Fields: verr.Fields.ByField(),
	})
}

// respondWithServiceError maps domain errors to status codes.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *services.ValidationError
		nf   *services.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		respondWithValidation(w, verr)
	case errors.As(err, &nf):
		respondWithError(w, http.StatusNotFound, nf.Error())
	case errors.Is(err, errInvalidBody):
		respondWithError(w, http.StatusBadRequest, constants.MsgInvalidBody)
	default:
		logging.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		respondWithError(w, http.StatusInternalServerError, constants.MsgInternal)
	}
}

// decodeJSON reads one JSON object into dst. Every value of the wrong JSON
// type is reported against its field.
func decodeJSON(r *http.Request, dst any, resource constants.Resource) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	err = json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		if errs := fieldTypeErrors(body, dst); len(errs) > 0 {
			return &services.ValidationError{Resource: resource, Fields: errs}
		}
		return services.NewFieldValidationError(resource, typeErr.Field, typeMessage(typeErr.Type))
	}
	return fmt.Errorf("%w: %v", errInvalidBody, err)
}

// fieldTypeErrors decodes each top-level member of body on its own against
// the matching field of the struct dst points to.
func fieldTypeErrors(body []byte, dst any) validation.Errors {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	t := reflect.TypeOf(dst)
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil
	}
	t = t.Elem()

	var errs validation.Errors
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		value, ok := raw[name]
		if !ok {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if err := json.Unmarshal(value, reflect.New(f.Type).Interface()); errors.As(err, &typeErr) {
			errs = append(errs, validation.FieldError{Field: name, Message: typeMessage(f.Type)})
		}
	}
	return errs
}

func typeMessage(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Bool {
		return validation.MsgBoolean
	}
	return validation.MsgInvalid
}

// parseID reads the {id} URL parameter.
func parseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// requireAll rejects a full replacement that leaves out a mandatory field.
func requireAll(resource constants.Resource, present map[string]bool, order ...string) error {
	var errs validation.Errors
	for _, field := range order {
		errs.Add(validation.Required(field, present[field]))
	}
	if len(errs) == 0 {
		return nil
	}
	return &services.ValidationError{Resource: resource, Fields: errs}
}
