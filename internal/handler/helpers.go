package handler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/access"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/formerror"
	"github.com/stemsi/sekolah-console/internal/middleware"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/response"
	"github.com/stemsi/sekolah-console/internal/service"
	"github.com/stemsi/sekolah-console/internal/validator"
)

// fail turns an error from a backend call into the console response.
// submitted is echoed back on form errors; pass nil for reads.
func fail(c *gin.Context, err error, submitted interface{}) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		// The API client already dropped the persisted login.
		response.AbortRedirect(c, access.LoginPath, response.ErrSessionExpired)
		return
	}
	switch {
	case errors.Is(err, service.ErrClassHidden), apiclient.IsStatus(err, http.StatusForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrAccessDenied)
		return
	case apiclient.IsStatus(err, http.StatusNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status < 500 && submitted != nil:
			response.FailForm(c, apiErr.Status, formerror.Normalize(err), submitted)
		case apiErr.Status < 500:
			response.FailWithMessage(c, apiErr.Status, response.ErrBackend, formerror.Normalize(err).Message())
		default:
			response.FailWithMessage(c, http.StatusBadGateway, response.ErrBackend, formerror.Normalize(err).Message())
		}
		return
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		response.Fail(c, http.StatusBadGateway, response.ErrBackendUnavailable)
		return
	}

	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// parseID reads a positive integer path parameter, answering 400 when it is
// malformed.
func parseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// bind decodes and validates the request body into dst, answering 422 with
// per-field messages when it is invalid. echo returns what to show back in
// the form.
func bind(c *gin.Context, dst interface{}, echo func() interface{}) bool {
	if res := validator.Bind(c, dst); res != nil {
		response.FailForm(c, http.StatusUnprocessableEntity, *res, echo())
		return false
	}
	return true
}

func currentUser(c *gin.Context) *model.User {
	if s := middleware.GetSession(c); s != nil {
		return s.User()
	}
	return nil
}
