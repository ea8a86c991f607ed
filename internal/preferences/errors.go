package preferences

import "errors"

// ErrNoStore is returned when preferences are written without a configured store
var ErrNoStore = errors.New("no preference store configured")
