package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	// Trade site specific.
	SessionMissing   failure.ErrorCode = "SessionMissing"
	SessionExpired   failure.ErrorCode = "SessionExpired"
	RateLimited      failure.ErrorCode = "RateLimited"
	UpstreamError    failure.ErrorCode = "UpstreamError"
	InvalidLeague    failure.ErrorCode = "InvalidLeague"
	InvalidAccount   failure.ErrorCode = "InvalidAccount"
	InvalidThreshold failure.ErrorCode = "InvalidThreshold"
)
