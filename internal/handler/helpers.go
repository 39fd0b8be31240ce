package handler

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/apierror"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const malformedBodyMessage = "Malformed JSON request body."

// maxPage bounds ?page so the row offset cannot overflow.
const maxPage = math.MaxInt32

// bindPayload reads the JSON object in the request body. An empty body is an
// empty payload. Returns false and writes a 400 if the body is not a JSON
// object; the caller should return immediately.
func bindPayload(c *gin.Context) (dto.Payload, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New(malformedBodyMessage))
		return nil, false
	}
	if strings.TrimSpace(string(body)) == "" {
		return dto.Payload{}, true
	}

	var p dto.Payload
	if err := binding.JSON.BindBody(body, &p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New(malformedBodyMessage))
		return nil, false
	}
	if p == nil {
		p = dto.Payload{}
	}
	return p, true
}

// pathID parses the :id route parameter. ok is false for anything that is
// not a positive decimal integer; such ids can never match a row.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParam reads ?page=N as a decimal integer. Missing, invalid or
// non-positive values mean page 1; larger values are capped at maxPage.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if errors.Is(err, strconv.ErrRange) {
		// page holds the saturated value.
		err = nil
	}
	switch {
	case err != nil || page < 1:
		return 1
	case page > maxPage:
		return maxPage
	}
	return page
}

func respond(c *gin.Context, status int, env dto.Envelope) {
	c.JSON(status, env)
}

func respondPage(c *gin.Context, data any, message string, page int, total int64) {
	env := dto.NewEnvelope(data, message)
	env.Meta = dto.NewPageMeta(page, dto.PageSize, total)
	respond(c, http.StatusOK, env)
}
