package media

import "errors"

var (
	ErrEmptyFile         = errors.New("empty_file")
	ErrInvalidMediaType  = errors.New("invalid_media_type")
	ErrPayloadTooLarge   = errors.New("payload_too_large")
	ErrMalformedEncoding = errors.New("malformed_encoding")
)
