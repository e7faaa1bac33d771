package resumes

import "errors"

var (
	ErrNotFound       = errors.New("resume not found")
	ErrInvalidInput   = errors.New("invalid resume input")
	ErrInvalidContent = errors.New("invalid resume content")
)
