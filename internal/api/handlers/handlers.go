package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnavailable   = "сервис временно недоступен"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

var (
	validate   = validator.New(validator.WithRequiredStructEnabled())
	translator ut.Translator
)

func init() {
	locale := ru.New()
	translator, _ = ut.New(locale, locale).GetTranslator("ru")
	if err := ru_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(fmt.Sprintf("handlers: register translations: %v", err))
	}

	registerRule("date", "{0} должно быть датой в формате YYYY-MM-DD", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
	registerRule("timeofday", "{0} должно быть временем в формате HH:MM", func(fl validator.FieldLevel) bool {
		_, err := types.NewTimeStringFromString(fl.Field().String())
		return err == nil
	})
	registerRule("weekday", "{0} должно быть днем недели", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseWeekday(fl.Field().String())
		return err == nil
	})
}

func registerRule(tag, message string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("handlers: register %s: %v", tag, err))
	}
	_ = validate.RegisterTranslation(tag, translator,
		func(trans ut.Translator) error { return trans.Add(tag, message, true) },
		func(trans ut.Translator, fe validator.FieldError) string {
			t, _ := trans.T(tag, fe.Field())
			return t
		},
	)
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON пишет ответ в формате JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с произвольным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, msgUnavailable)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON декодирует тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// Validate проверяет структуру по тегам validate.
// Возвращает сообщение для пользователя на русском
func Validate(v interface{}) (string, bool) {
	err := validate.Struct(v)
	if err == nil {
		return "", true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Translate(translator), false
	}
	return err.Error(), false
}
