package r2sync

import (
	"time"

	"github.com/go-co-op/gocron"
)

// RunEvery runs the given job immediately and then on the given interval,
// blocking forever. Used by the upload command's repeat mode, which skips the
// interactive prompt since nobody is at the terminal to answer it.
func RunEvery(interval time.Duration, job func()) error {
	scheduler := gocron.NewScheduler(time.UTC)
	_, jobErr := scheduler.Every(interval).StartImmediately().Do(job)
	if jobErr != nil {
		return jobErr
	}
	scheduler.StartBlocking()
	return nil
}
