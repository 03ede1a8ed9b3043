package r2sync

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// RunResults accumulates per-file upload outcomes for one run.
type RunResults struct {
	Uploaded      int
	UploadedBytes int64
	Failed        map[string]error
	lock          *sync.Mutex
}

func NewRunResults() *RunResults {
	return &RunResults{
		Failed: make(map[string]error),
		lock:   new(sync.Mutex),
	}
}

func (r *RunResults) AddSuccess(sizeBytes int64) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Uploaded++
	r.UploadedBytes += sizeBytes
}

func (r *RunResults) AddFailure(key string, result error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Failed[key] = result
}

// PrepareUpload lists the bucket and scans the source folder, producing the
// plan for this run. Read-only: nothing is mutated until ExecuteUpload.
func PrepareUpload(ctx context.Context, client BucketClient, appConfig AppConfig) (*Plan, error) {
	remoteKeys, listErr := client.ListKeys(ctx, appConfig.Bucket, appConfig.Prefix)
	if listErr != nil {
		log.Warn(fmt.Sprintf("listBucket err: %s", listErr))
		return nil, listErr
	}

	localFiles, scanErr := concreteScanFunc(appConfig.SourceFolder, appConfig.Prefix)
	if scanErr != nil {
		log.Warn(fmt.Sprintf("scanTree err: %s", scanErr))
		return nil, scanErr
	}

	return BuildPlan(localFiles, remoteKeys), nil
}

// ExecuteUpload uploads every planned file, bounded by the configured
// concurrency. A single file's failure never stops the remaining uploads.
func ExecuteUpload(ctx context.Context, client BucketClient, appConfig AppConfig, plan *Plan) *RunResults {
	results := NewRunResults()
	uploadStartTime := time.Now()
	log.Info(fmt.Sprintf("Upload starting for %s: %d files, %d already in sync.",
		appConfig.SourceFolder, len(plan.Upload), len(plan.Skip)))

	concurrency := appConfig.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	semaphore := make(chan int, concurrency)

	var wg sync.WaitGroup
	for _, localFile := range plan.Upload {
		wg.Add(1)
		go doUploadFile(ctx, client, appConfig.Bucket, localFile, semaphore, &wg, results)
	}
	wg.Wait()

	duration := time.Since(uploadStartTime)
	log.Info(fmt.Sprintf("Upload complete for %s. Took %s", appConfig.SourceFolder, duration.String()))

	return results
}

func doUploadFile(
	ctx context.Context,
	client BucketClient,
	bucketName string,
	localFile LocalFile,
	semaphore chan int,
	wg *sync.WaitGroup,
	results *RunResults,
) error {
	semaphore <- 1
	defer func() {
		<-semaphore
		wg.Done()
	}()

	fd, fileErr := os.Open(localFile.Path)
	if fileErr != nil {
		log.Warn(fmt.Sprintf("Error opening %s: %s", localFile.Path, fileErr))
		results.AddFailure(localFile.Key, fileErr)
		return fileErr
	}
	defer fd.Close()

	contentType := ResolveContentType(localFile.Key)
	uploadErr := client.UploadFile(ctx, bucketName, localFile.Key, contentType, fd)
	if uploadErr != nil {
		log.Warn(fmt.Sprintf("Error uploading %s: %s", localFile.Key, uploadErr))
		results.AddFailure(localFile.Key, uploadErr)
	} else {
		log.Info(fmt.Sprintf("Uploaded file %s as key %s (%s)", localFile.Path, localFile.Key, contentType))
		results.AddSuccess(localFile.Size)
	}

	return uploadErr
}
