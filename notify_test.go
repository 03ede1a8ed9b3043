package r2sync

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSNSPublishOnUploadFailures(t *testing.T) {
	mockNotifier := &SNSNotifier{
		Client: NewMockSNSClient(),
		Topic:  "mock-topic",
	}
	mockResults := &RunResults{
		Uploaded: 3,
		Failed: map[string]error{
			"folder1/broken-file": fmt.Errorf("simulated upload failure"),
		},
		lock: new(sync.Mutex),
	}
	appConfig := AppConfig{
		Bucket:       "not-real-bucket",
		SourceFolder: "/folder1",
	}
	expectedSubject := "Upload Errors: /folder1 -> not-real-bucket"

	notifyErr := mockNotifier.NotifyUploadResults(appConfig, mockResults)

	assert.Nil(t, notifyErr)
	mockClient := mockNotifier.Client.(*MockSNSClient)
	assert.Len(t, mockClient.PublishRequests, 1)
	assert.Equal(t, expectedSubject, *mockClient.PublishRequests[0].Subject)
	assert.Contains(t, *mockClient.PublishRequests[0].Message, "folder1/broken-file")
	assert.Contains(t, *mockClient.PublishRequests[0].Message, "simulated upload failure")
	assert.Equal(t, "mock-topic", *mockClient.PublishRequests[0].TopicArn)
}

func TestSNSStaysQuietOnCleanUploadRun(t *testing.T) {
	mockNotifier := &SNSNotifier{
		Client: NewMockSNSClient(),
		Topic:  "mock-topic",
	}
	mockResults := NewRunResults()
	mockResults.AddSuccess(10)

	notifyErr := mockNotifier.NotifyUploadResults(AppConfig{}, mockResults)

	assert.Nil(t, notifyErr)
	mockClient := mockNotifier.Client.(*MockSNSClient)
	assert.Len(t, mockClient.PublishRequests, 0)
}

func TestSNSPublishOnDeleteFailures(t *testing.T) {
	mockNotifier := &SNSNotifier{
		Client: NewMockSNSClient(),
		Topic:  "mock-topic",
	}
	summary := NewDeleteSummary()
	summary.Deleted = 5
	summary.Failed = 2
	summary.FailedKeys["stuck/a"] = fmt.Errorf("AccessDenied: simulated")
	summary.FailedKeys["stuck/b"] = fmt.Errorf("InternalError: simulated")
	appConfig := AppConfig{Bucket: "not-real-bucket"}

	notifyErr := mockNotifier.NotifyDeleteResults(appConfig, summary)

	assert.Nil(t, notifyErr)
	mockClient := mockNotifier.Client.(*MockSNSClient)
	assert.Len(t, mockClient.PublishRequests, 1)
	assert.Equal(t, "Delete Errors: not-real-bucket", *mockClient.PublishRequests[0].Subject)
	assert.Contains(t, *mockClient.PublishRequests[0].Message, "stuck/a")
	assert.Contains(t, *mockClient.PublishRequests[0].Message, "stuck/b")
}

func TestSNSStaysQuietOnCleanDeleteRun(t *testing.T) {
	mockNotifier := &SNSNotifier{
		Client: NewMockSNSClient(),
		Topic:  "mock-topic",
	}
	summary := NewDeleteSummary()
	summary.Deleted = 10

	notifyErr := mockNotifier.NotifyDeleteResults(AppConfig{}, summary)

	assert.Nil(t, notifyErr)
	mockClient := mockNotifier.Client.(*MockSNSClient)
	assert.Len(t, mockClient.PublishRequests, 0)
}
