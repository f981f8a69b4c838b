package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

// HTTPHelper centralizes the API's JSON envelope and request validation.
// Every response carries a success flag; errors carry an error message.
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewHTTPHelper() *HTTPHelper {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	return &HTTPHelper{
		Validate:   validate,
		Translator: translator,
	}
}

// ValidateStruct validates a bound request body and returns translated
// field errors, keyed by field name.
func (u *HTTPHelper) ValidateStruct(req interface{}) map[string]string {
	err := u.Validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	errorResponse := map[string]string{}
	translations := validationErrors.Translate(u.Translator)
	for _, fieldErr := range validationErrors {
		errorResponse[Underscore(fieldErr.Field())] = translations[fieldErr.Namespace()]
	}
	return errorResponse
}

func (u *HTTPHelper) SendSuccess(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func (u *HTTPHelper) SendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

func (u *HTTPHelper) SendValidationError(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "validation failed",
		"fields":  fieldErrors,
	})
}
