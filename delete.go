package r2sync

import (
	"context"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// deleteBatchSize is the provider's DeleteObjects limit.
const deleteBatchSize = 1000

// DeleteFilter restricts a bulk delete to keys matching an extension or a
// filename substring. An empty filter matches every key.
type DeleteFilter struct {
	Extensions []string
	Patterns   []string
}

func (f DeleteFilter) Empty() bool {
	return len(f.Extensions) == 0 && len(f.Patterns) == 0
}

// Matches reports whether a key should be deleted and why. Extension entries
// double as exact-name matchers so dotfiles like .DS_Store can be targeted.
func (f DeleteFilter) Matches(key string) (bool, string) {
	if f.Empty() {
		return true, "no filter"
	}

	for _, ext := range f.Extensions {
		if key == ext || strings.HasSuffix(key, "/"+ext) {
			return true, fmt.Sprintf("exact match: %s", ext)
		}
	}

	for _, ext := range f.Extensions {
		if strings.HasPrefix(ext, ".") && strings.HasSuffix(strings.ToLower(key), strings.ToLower(ext)) {
			return true, fmt.Sprintf("extension: %s", ext)
		}
	}

	for _, pattern := range f.Patterns {
		if strings.Contains(strings.ToLower(key), strings.ToLower(pattern)) {
			return true, fmt.Sprintf("contains: %s", pattern)
		}
	}

	return false, ""
}

// MatchedKey pairs a deletable key with the filter rule that selected it.
type MatchedKey struct {
	Key    string
	Reason string
}

// DeleteSummary is the terminal state of a bulk delete run.
type DeleteSummary struct {
	Deleted    int
	Failed     int
	FailedKeys map[string]error
}

func NewDeleteSummary() *DeleteSummary {
	return &DeleteSummary{
		FailedKeys: make(map[string]error),
	}
}

// FindKeysToDelete lists the bucket and returns the matching keys, sorted so
// the preview and the delete order are stable between runs.
func FindKeysToDelete(ctx context.Context, client BucketClient, appConfig AppConfig, filter DeleteFilter) ([]MatchedKey, error) {
	remoteKeys, listErr := client.ListKeys(ctx, appConfig.Bucket, appConfig.Prefix)
	if listErr != nil {
		log.Warn(fmt.Sprintf("listBucket err: %s", listErr))
		return nil, listErr
	}

	sortedKeys := make([]string, 0, len(remoteKeys))
	for key := range remoteKeys {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	matched := make([]MatchedKey, 0, len(sortedKeys))
	for _, key := range sortedKeys {
		if ok, reason := filter.Matches(key); ok {
			matched = append(matched, MatchedKey{Key: key, Reason: reason})
		}
	}

	return matched, nil
}

// ExecuteDelete removes the given keys in chunks of at most deleteBatchSize.
// Per-key errors reported by the provider and whole-chunk request failures
// are both recorded; neither stops the remaining chunks.
func ExecuteDelete(ctx context.Context, client BucketClient, bucketName string, matched []MatchedKey) *DeleteSummary {
	summary := NewDeleteSummary()

	keys := make([]string, len(matched))
	for i, m := range matched {
		keys[i] = m.Key
	}

	chunkCount := (len(keys) + deleteBatchSize - 1) / deleteBatchSize
	for i := 0; i < len(keys); i += deleteBatchSize {
		end := i + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[i:end]
		chunkIndex := i/deleteBatchSize + 1
		log.Info(fmt.Sprintf("Deleting chunk %d of %d (%d keys)", chunkIndex, chunkCount, len(chunk)))

		result, chunkErr := client.DeleteBatch(ctx, bucketName, chunk)
		if chunkErr != nil {
			log.Warn(fmt.Sprintf("Error deleting chunk %d: %s", chunkIndex, chunkErr))
			for _, key := range chunk {
				summary.FailedKeys[key] = chunkErr
			}
			summary.Failed += len(chunk)
			continue
		}

		summary.Deleted += len(result.Deleted)
		for key, keyErr := range result.Failed {
			log.Warn(fmt.Sprintf("Error deleting %s: %s", key, keyErr))
			summary.FailedKeys[key] = keyErr
		}
		summary.Failed += len(result.Failed)
	}

	return summary
}
