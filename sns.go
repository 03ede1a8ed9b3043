package r2sync

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

func NewSNSNotifier(appConfig AppConfig) (Notifier, error) {
	var notifier Notifier

	cfg, cfgErr := config.LoadDefaultConfig(context.TODO(),
		config.WithSharedConfigProfile(appConfig.Notify.Profile),
		config.WithRegion(appConfig.Notify.Region))

	if cfgErr != nil {
		return notifier, cfgErr
	}
	snsClient := &SNSClient{sns.NewFromConfig(cfg)}
	notifier = &SNSNotifier{Client: snsClient, Topic: appConfig.Notify.Topic}

	return notifier, nil
}

type SNSClientIface interface {
	PublishMessage(msg *sns.PublishInput) error
}

type SNSClient struct {
	Client *sns.Client
}

func (s *SNSClient) PublishMessage(msg *sns.PublishInput) error {
	_, publishErr := s.Client.Publish(context.TODO(), msg)
	return publishErr
}

type SNSNotifier struct {
	Client SNSClientIface
	Topic  string
}

// NotifyUploadResults publishes a failure digest. Clean runs stay quiet.
func (s *SNSNotifier) NotifyUploadResults(appConfig AppConfig, results *RunResults) error {
	if len(results.Failed) == 0 {
		return nil
	}

	// TODO: this has a maximum message size of 256KB, need to account for that
	notificationBody := ""
	for _, key := range sortedFailureKeys(results.Failed) {
		notificationBody += fmt.Sprintf("Key: %s\nError: %s\n\n", key, results.Failed[key])
	}

	snsPublishReq := &sns.PublishInput{
		Message:  aws.String(notificationBody),
		TopicArn: aws.String(s.Topic),
		Subject:  aws.String(fmt.Sprintf("Upload Errors: %s -> %s", appConfig.SourceFolder, appConfig.Bucket)),
	}

	return s.Client.PublishMessage(snsPublishReq)
}

func (s *SNSNotifier) NotifyDeleteResults(appConfig AppConfig, summary *DeleteSummary) error {
	if len(summary.FailedKeys) == 0 {
		return nil
	}

	notificationBody := ""
	for _, key := range sortedFailureKeys(summary.FailedKeys) {
		notificationBody += fmt.Sprintf("Key: %s\nError: %s\n\n", key, summary.FailedKeys[key])
	}

	snsPublishReq := &sns.PublishInput{
		Message:  aws.String(notificationBody),
		TopicArn: aws.String(s.Topic),
		Subject:  aws.String(fmt.Sprintf("Delete Errors: %s", appConfig.Bucket)),
	}

	return s.Client.PublishMessage(snsPublishReq)
}

func sortedFailureKeys(failed map[string]error) []string {
	keys := make([]string, 0, len(failed))
	for key := range failed {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
