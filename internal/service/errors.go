package service

import "errors"

var (
	ErrInvalidBlocks   = errors.New("invalid block payload")
	ErrMentionNotFound = errors.New("mention target not found")
)
