package r2sync

// Plan partitions the scanned files into the ones that need uploading and the
// ones whose key already exists remotely. Both slices keep the scan order.
type Plan struct {
	Upload      []LocalFile
	Skip        []LocalFile
	UploadBytes int64
	SkipBytes   int64
}

// BuildPlan classifies every local file by key presence in the remote set.
// Pure: no I/O, and identical inputs always produce the identical plan.
func BuildPlan(localFiles []LocalFile, remoteKeys RemoteKeySet) *Plan {
	plan := &Plan{
		Upload: make([]LocalFile, 0, len(localFiles)),
		Skip:   make([]LocalFile, 0),
	}

	for _, localFile := range localFiles {
		if _, ok := remoteKeys[localFile.Key]; ok {
			plan.Skip = append(plan.Skip, localFile)
			plan.SkipBytes += localFile.Size
		} else {
			plan.Upload = append(plan.Upload, localFile)
			plan.UploadBytes += localFile.Size
		}
	}

	return plan
}
