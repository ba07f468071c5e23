// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// ErrMissingInput is wrapped by errors reporting that the source PDF or the
// results table does not exist. Callers test for it with errors.Is.
var ErrMissingInput = errors.New("missing input")

// ErrInvalidRange is returned when a page range starts below 1 or ends
// before it starts.
var ErrInvalidRange = errors.New("invalid page range")
