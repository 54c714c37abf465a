// Package postgres holds errors shared by the concrete repositories.
package postgres

import "github.com/pkg/errors"

var ErrNotFound = errors.New("record not found")
