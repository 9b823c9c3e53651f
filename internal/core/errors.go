package core

import "errors"

var (
	// ErrConfiguration means required settings are missing or malformed. Fatal at startup.
	ErrConfiguration = errors.New("configuration error")
	// ErrStorageUnavailable means the list backend could not serve the request.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrDeserialization marks a single stored entry that is not a valid message.
	ErrDeserialization = errors.New("failed to decode message")
	// ErrInference means the model call failed or produced nothing.
	ErrInference = errors.New("inference failed")

	ErrEmptyUserID = errors.New("user id must not be empty")
	ErrEmptyInput  = errors.New("input must not be empty")
)
