package services

import "github.com/cockroachdb/errors"

var errIncompletePair = errors.New("login response did not contain a token pair")
