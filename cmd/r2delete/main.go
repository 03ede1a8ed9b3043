package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"r2sync"
)

const previewLimit = 20

func main() {
	configFilePath := flag.String("configfile", "", "Configuration File Path")
	prefix := flag.String("prefix", "", "Only delete keys under this prefix")
	extensions := flag.String("ext", "", "Comma-separated extensions or exact file names to delete")
	patterns := flag.String("match", "", "Comma-separated substrings to match in key names")
	dryRun := flag.Bool("dry-run", false, "Only show what would be deleted")
	assumeYes := flag.Bool("yes", false, "Skip the confirmation prompt")
	flag.Parse()

	appConfig, configErr := r2sync.LoadConfig(*configFilePath)
	if configErr != nil {
		log.Fatal(configErr)
	}
	if *prefix != "" {
		appConfig.Prefix = *prefix
	}

	filter := r2sync.DeleteFilter{
		Extensions: splitList(*extensions),
		Patterns:   splitList(*patterns),
	}

	fmt.Printf("Scanning bucket: %s\n", appConfig.Bucket)
	if appConfig.Prefix != "" {
		fmt.Printf("With prefix: %s\n", appConfig.Prefix)
	}

	ctx := context.Background()
	client, clientErr := r2sync.NewR2Client(ctx, appConfig)
	if clientErr != nil {
		log.Fatal(clientErr)
	}

	matched, findErr := r2sync.FindKeysToDelete(ctx, client, appConfig, filter)
	if findErr != nil {
		log.Fatal(findErr)
	}
	if len(matched) == 0 {
		fmt.Println("No matching files found.")
		return
	}

	fmt.Printf("Found %d files to delete:\n", len(matched))
	for i, match := range matched {
		if i == previewLimit {
			fmt.Printf("  ... and %d more files\n", len(matched)-previewLimit)
			break
		}
		fmt.Printf("  %s (%s)\n", match.Key, match.Reason)
	}

	if *dryRun {
		fmt.Println("DRY RUN MODE - No files will be deleted")
		return
	}

	if !*assumeYes && !r2sync.ConfirmDelete(r2sync.NewStdinConfirmer(), len(matched)) {
		fmt.Println("Operation cancelled.")
		return
	}

	summary := r2sync.ExecuteDelete(ctx, client, appConfig.Bucket, matched)
	fmt.Printf("Successfully deleted: %d files\n", summary.Deleted)
	fmt.Printf("Failed: %d files\n", summary.Failed)

	if appConfig.Notify.Topic != "" {
		notifier, notifierErr := r2sync.NewSNSNotifier(appConfig)
		if notifierErr != nil {
			log.Warn(fmt.Sprintf("Error creating notifier: %s", notifierErr))
		} else if notifyErr := notifier.NotifyDeleteResults(appConfig, summary); notifyErr != nil {
			log.Warn(fmt.Sprintf("Error publishing notification: %s", notifyErr))
		}
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
