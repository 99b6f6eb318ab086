package domain

import "errors"

// ErrConnectivity indicates the pre-batch connectivity probe failed. The
// batch is aborted before any prompt is sent.
var ErrConnectivity = errors.New("backend connectivity probe failed")

// ErrNoJoinableRecords indicates the two result stores share no prompt IDs,
// so no comparison can be produced.
var ErrNoJoinableRecords = errors.New("no joinable records between result stores")
