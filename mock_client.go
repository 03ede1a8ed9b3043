package r2sync

import (
	"context"
	"io"
	"sync"
)

type MockUploadRequest struct {
	Bucket      string
	Key         string
	ContentType string
}

type MockBucketClient struct {
	UploadRequests []MockUploadRequest
	DeleteRequests [][]string
	ListErr        error
	UploadErrs     map[string]error
	KeyErrs        map[string]error
	ChunkErrs      map[int]error
	mockKeys       RemoteKeySet
	lock           sync.Mutex
}

func NewMockClient(mocked RemoteKeySet) *MockBucketClient {
	if mocked == nil {
		mocked = make(RemoteKeySet)
	}
	return &MockBucketClient{
		UploadRequests: make([]MockUploadRequest, 0),
		DeleteRequests: make([][]string, 0),
		mockKeys:       mocked,
	}
}

func (s *MockBucketClient) ListKeys(ctx context.Context, bucketName string, prefix string) (RemoteKeySet, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.mockKeys, nil
}

func (s *MockBucketClient) UploadFile(ctx context.Context, bucketName, key, contentType string, body io.Reader) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if uploadErr, ok := s.UploadErrs[key]; ok {
		return uploadErr
	}
	s.UploadRequests = append(s.UploadRequests, MockUploadRequest{
		Bucket:      bucketName,
		Key:         key,
		ContentType: contentType,
	})
	s.mockKeys[key] = struct{}{}
	return nil
}

func (s *MockBucketClient) DeleteBatch(ctx context.Context, bucketName string, keys []string) (BatchDeleteResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	chunkIndex := len(s.DeleteRequests)
	s.DeleteRequests = append(s.DeleteRequests, keys)

	result := BatchDeleteResult{
		Deleted: make([]string, 0, len(keys)),
		Failed:  make(map[string]error),
	}
	if chunkErr, ok := s.ChunkErrs[chunkIndex]; ok {
		return result, chunkErr
	}
	for _, key := range keys {
		if keyErr, ok := s.KeyErrs[key]; ok {
			result.Failed[key] = keyErr
		} else {
			result.Deleted = append(result.Deleted, key)
			delete(s.mockKeys, key)
		}
	}
	return result, nil
}
