// Package handlers maps HTTP routes onto store operations: input validation,
// caller checks, store calls and JSON shaping. Store failures are translated
// into the error taxonomy (400 validation/conflict, 401 identity, 404
// missing entity, 500 everything else); details stay in the server log.
package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"casework-backend/internal/models"
)

// maxAttachmentFiles caps multipart attachment lists per request.
const maxAttachmentFiles = 15

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Error: message})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// queryID parses an optional integer query parameter, nil when absent.
func queryID(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &id, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}
