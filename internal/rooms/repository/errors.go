package repository

import "errors"

var ErrNotFound = errors.New("room not found")
