package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"r2sync"
)

func main() {
	configFilePath := flag.String("configfile", "", "Configuration File Path")
	sourceFolder := flag.String("source", "", "Local folder to upload")
	prefix := flag.String("prefix", "", "Remote key prefix")
	assumeYes := flag.Bool("yes", false, "Skip the confirmation prompt")
	every := flag.Duration("every", 0, "Repeat the upload on this interval (implies -yes)")
	flag.Parse()

	appConfig, configErr := r2sync.LoadConfig(*configFilePath)
	if configErr != nil {
		log.Fatal(configErr)
	}
	if *sourceFolder != "" {
		appConfig.SourceFolder = *sourceFolder
	}
	if *prefix != "" {
		appConfig.Prefix = *prefix
	}
	if appConfig.SourceFolder == "" {
		log.Fatal(fmt.Errorf("%w: no source folder given (flag -source or R2_SOURCE_FOLDER)", r2sync.ErrConfig))
	}

	for _, configStr := range appConfig.ConfigStringArray() {
		fmt.Println(configStr)
	}

	ctx := context.Background()
	client, clientErr := r2sync.NewR2Client(ctx, appConfig)
	if clientErr != nil {
		log.Fatal(clientErr)
	}

	var notifier r2sync.Notifier
	if appConfig.Notify.Topic != "" {
		var notifierErr error
		notifier, notifierErr = r2sync.NewSNSNotifier(appConfig)
		if notifierErr != nil {
			log.Fatal(notifierErr)
		}
	}

	if *every > 0 {
		runErr := r2sync.RunEvery(*every, func() {
			runUpload(ctx, client, appConfig, notifier, true)
		})
		if runErr != nil {
			log.Fatal(runErr)
		}
		return
	}

	os.Exit(runUpload(ctx, client, appConfig, notifier, *assumeYes))
}

func runUpload(ctx context.Context, client r2sync.BucketClient, appConfig r2sync.AppConfig, notifier r2sync.Notifier, assumeYes bool) int {
	plan, planErr := r2sync.PrepareUpload(ctx, client, appConfig)
	if planErr != nil {
		log.Error(planErr)
		return 1
	}

	fmt.Printf("%d files to upload (%d bytes), %d already present (%d bytes)\n",
		len(plan.Upload), plan.UploadBytes, len(plan.Skip), plan.SkipBytes)
	if len(plan.Upload) == 0 {
		fmt.Println("Nothing to upload.")
		return 0
	}

	if !assumeYes && !r2sync.ConfirmUpload(r2sync.NewStdinConfirmer(), len(plan.Upload)) {
		fmt.Println("Operation cancelled.")
		return 0
	}

	results := r2sync.ExecuteUpload(ctx, client, appConfig, plan)
	fmt.Printf("Uploaded %d files (%d bytes), %d failures\n",
		results.Uploaded, results.UploadedBytes, len(results.Failed))

	if notifier != nil {
		if notifyErr := notifier.NotifyUploadResults(appConfig, results); notifyErr != nil {
			log.Warn(fmt.Sprintf("Error publishing notification: %s", notifyErr))
		}
	}

	if len(results.Failed) > 0 {
		return 1
	}
	return 0
}
