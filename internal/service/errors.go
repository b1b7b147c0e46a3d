package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"

	appErrors "github.com/noah-isme/aews-api/pkg/errors"
)

// dbError classifies a repository failure. Connection-level faults surface as
// 503 so clients can distinguish an unreachable store from a bad request.
func dbError(err error) *appErrors.Error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if isConnectionError(err) {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, appErrors.ErrUnavailable.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
}

// isInvalidUUID matches Postgres 22P02 (invalid text representation), which a
// malformed uuid path parameter triggers. Treated as not found.
func isInvalidUUID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08 is connection exception, 57P01 is admin shutdown.
		switch {
		case len(pqErr.Code) >= 2 && pqErr.Code[:2] == "08":
			return true
		case pqErr.Code == "57P01":
			return true
		}
	}
	return false
}
