package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

// The session cookie grants full account access on the trade site, so it must
// never end up in request/response dumps.
//
//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)(POESESSID=).+?(;|\r)`),
	regexp.MustCompile(`(?s)(Cookie: ).+?(\r)`),
	regexp.MustCompile(`(?s)(Set-Cookie: ).+?(\r)`),
	regexp.MustCompile(`(?s)("sessionId":\s?").+?(")`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
