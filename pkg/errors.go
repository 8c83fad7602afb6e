package pkg

import "errors"

var (
	ErrNoReachableTarget = errors.New("could not connect to any target provided")
	ErrRequestFailed     = errors.New("request failed")
	ErrUrlError          = errors.New("url parse error")
	ErrWordIsURL         = errors.New("word is actually a url")
)
