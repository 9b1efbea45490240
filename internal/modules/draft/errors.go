package draft

import "errors"

var ErrNoDraft = errors.New("no_draft")
