package seo

import "errors"

// ErrInvalidKeywords means the model returned keywords in a shape that is
// neither a string nor a list of strings.
var ErrInvalidKeywords = errors.New("keywords are neither a string nor a list")
