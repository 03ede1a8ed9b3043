package r2sync

type Notifier interface {
	NotifyUploadResults(appConfig AppConfig, results *RunResults) error
	NotifyDeleteResults(appConfig AppConfig, summary *DeleteSummary) error
}
