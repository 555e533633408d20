package server

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"stashboard/internal/infrastructure/trade"
	"stashboard/pkg/errcodes"
)

// asFailure translates upstream trade errors into the failure categories the
// reply layer maps onto HTTP statuses. Anything unrecognized falls through as
// an internal error.
func asFailure(err error) error {
	var (
		rateLimited *trade.RateLimitedError
		upstream    *trade.StatusError
	)

	switch {
	case errors.Is(err, trade.ErrNoSession):
		return failure.NewUnauthorizedError(
			err.Error(),
			failure.WithCode(errcodes.SessionMissing),
			failure.WithDescription("Session cookie is not configured"),
		)
	case errors.Is(err, trade.ErrSessionExpired):
		return failure.NewForbiddenError(
			err.Error(),
			failure.WithCode(errcodes.SessionExpired),
			failure.WithDescription("Session cookie was rejected, refresh POESESSID"),
		)
	case errors.As(err, &rateLimited):
		return failure.NewConflictError(
			err.Error(),
			failure.WithCode(errcodes.RateLimited),
			failure.WithDescription(fmt.Sprintf(
				"Trade API rate limit hit, retry after %s", rateLimited.RetryAfter,
			)),
		)
	case errors.As(err, &upstream):
		return failure.NewInternalServerError(
			err.Error(),
			failure.WithCode(errcodes.UpstreamError),
			failure.WithDescription(fmt.Sprintf(
				"Trade API %s endpoint responded with status %d", upstream.Endpoint, upstream.StatusCode,
			)),
		)
	default:
		return err
	}
}
