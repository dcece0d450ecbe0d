package shutdown

import "errors"

var ErrForced = errors.New("graceful stop timed out, forced stop")
