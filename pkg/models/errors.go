package models

import "errors"

// ErrMissingID is returned when a descriptor is registered without an ID.
var ErrMissingID = errors.New("notebook type descriptor missing id")
