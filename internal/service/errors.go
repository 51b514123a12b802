package service

import "errors"

var (
	ErrNameRequired    = errors.New("name is required")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomIDExhausted = errors.New("could not allocate a unique room id")
)
