package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Response es el sobre estándar de las operaciones de escritura.
type Response struct {
	Status  string      `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// CodedMessage es el cuerpo de rechazos con código, ej. {code:"no_account", message:"..."}.
type CodedMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendSuccess responde 200 con {status:"success", message, data}.
func SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: message, Data: data})
}

// SendData responde 200 con el cuerpo tal cual (listados {data, meta} y detalles).
func SendData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendFailed responde {status:"failed", message}; message puede ser texto o mapa campo -> error.
func SendFailed(c *gin.Context, statusCode int, message interface{}) {
	c.AbortWithStatusJSON(statusCode, Response{Status: StatusFailed, Message: message})
}

// SendUnauthorized responde como el middleware de auth: {message:"Unauthorize"}.
func SendUnauthorized(c *gin.Context, statusCode int) {
	c.AbortWithStatusJSON(statusCode, gin.H{"message": "Unauthorize"})
}

// SendError traduce errores de dominio/infra a HTTP.
func SendError(c *gin.Context, err error) {
	var (
		fieldErrs  FieldErrors
		requestErr *sharedDomain.RequestError
		dupErr     *sharedDomain.DuplicateError
	)

	switch {
	case errors.As(err, &fieldErrs):
		SendFailed(c, http.StatusBadRequest, fieldErrs)
	case errors.As(err, &requestErr):
		if requestErr.Code != "" {
			SendFailed(c, http.StatusBadRequest, CodedMessage{Code: requestErr.Code, Message: requestErr.Message})
			return
		}
		SendFailed(c, http.StatusBadRequest, requestErr.Message)
	case errors.As(err, &dupErr):
		SendFailed(c, http.StatusBadRequest, dupErr.Error())
	case errors.Is(err, sharedDomain.ErrInvalidField):
		SendFailed(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, sharedDomain.ErrNotFound), errors.Is(err, pagination.ErrUnknownEntity):
		SendFailed(c, http.StatusNotFound, err.Error())
	case errors.Is(err, sharedDomain.ErrUnauthorized):
		SendUnauthorized(c, http.StatusUnauthorized)
	case errors.Is(err, sharedDomain.ErrForbidden):
		SendUnauthorized(c, http.StatusForbidden)
	default:
		SendFailed(c, http.StatusInternalServerError, "internal server error")
	}
}

// ServerURL devuelve "<scheme>://<host>" de la petición, base de las URLs de imágenes.
func ServerURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
