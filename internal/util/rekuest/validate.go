package rekuest

import (
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/util"
)

var (
	Validate = util.NewValidator()

	translator ut.Translator
)

func init() {
	translator, _ = ut.New(en.New()).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(Validate, translator); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	for tag, accepted := range util.CustomValidations {
		message := "{0} must be one of [" + strings.Join(accepted, " ") + "]"
		err := Validate.RegisterTranslation(tag, translator, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), fe.Field())
			return t
		})
		if err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("could not register translation for custom validation")
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// translate translates errors into ErrorResponses
func translate(ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(translator),
		})
	}
	return trans
}

func validateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(errs)
	}
	return nil
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. If the validation passed it will write the unmarshalled body
// to dest and return a nil, otherwise it will return an error. Notice that dest shall
// always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(dest)
}

// ValidQuery is ValidBody for query strings.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(dest)
}

func ValidStruct(dest any) error {
	if err := validateStruct(dest); err != nil {
		return apierr.NewInvalidViolations(err)
	}

	return nil
}

func ValidVar(field any, tag string) error {
	if err := Validate.Var(field, tag); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return apierr.NewInvalidViolations(translate(errs))
		}
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return nil
}
