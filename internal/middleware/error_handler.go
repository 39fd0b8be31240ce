package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/apierror"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/service"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "Internal server error."

// ErrorHandler renders the last error attached with c.Error. Domain errors
// map onto their status; anything unknown is logged and answered with a
// generic 500 so internals never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, body := render(err)
		if status >= http.StatusInternalServerError {
			log.Ctx(c.Request.Context()).Error().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Err(err).
				Msg("unhandled error")
		}
		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, body)
	}
}

func render(err error) (int, any) {
	var failure *validation.Failure
	var persistence *service.PersistenceError

	switch {
	case errors.As(err, &failure):
		return http.StatusUnprocessableEntity, apierror.NewValidation(failure.Errors)
	case errors.Is(err, service.ErrBookNotFound):
		return http.StatusNotFound, apierror.New("Book not found.")
	case errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusNotFound, apierror.New("Category not found.")
	case errors.Is(err, service.ErrCategoryInUse):
		return http.StatusConflict, apierror.New("The category cannot be deleted while books belong to it.")
	case errors.As(err, &persistence):
		return http.StatusInternalServerError, apierror.New(persistence.Error())
	default:
		return http.StatusInternalServerError, apierror.New(internalErrorMessage)
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Ctx(c.Request.Context()).Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(internalErrorMessage))
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Ctx(c.Request.Context()).Info()
		if status >= http.StatusInternalServerError {
			event = log.Ctx(c.Request.Context()).Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
