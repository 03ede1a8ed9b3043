package r2sync

import "errors"

// Fatal error kinds. Per-item upload/delete failures are not wrapped with
// these; they are accumulated into run results instead of aborting the run.
var (
	ErrConfig     = errors.New("invalid configuration")
	ErrRemoteList = errors.New("bucket listing failed")
	ErrLocalScan  = errors.New("local directory scan failed")
)
