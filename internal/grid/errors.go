package grid

import "errors"

// errNoChange tells mutate to leave the published grid untouched.
var errNoChange = errors.New("no change")
