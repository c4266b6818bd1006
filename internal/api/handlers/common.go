package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// writeError renders err as {code, message}. The cause is attached to the
// gin context so the request logger records it.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	code := utils.CodeInternal
	switch status {
	case http.StatusNotFound:
		code = utils.CodeNotFound
	case http.StatusConflict:
		code = utils.CodeConflict
	}
	c.JSON(status, APIError{
		Code:    code,
		Message: http.StatusText(status),
	})
}

func requireCompanyID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("company_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

// readUpload reads the named multipart file, failing when it is missing or
// larger than limit bytes.
func readUpload(c *gin.Context, op, field string, limit int64) ([]byte, *multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, field+" file is required", err)
	}
	if fh.Size > limit {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, field+" file is too large", nil)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "failed to open "+field+" file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "failed to read "+field+" file", err)
	}
	if int64(len(data)) > limit {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, field+" file is too large", nil)
	}
	return data, fh, nil
}
