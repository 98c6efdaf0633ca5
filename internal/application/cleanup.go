package application

// CleanupJob asks the cleanup worker to delete stored blobs by their public
// URLs. Deletion is best-effort on both ends of the queue.
type CleanupJob struct {
	URLs []string `json:"urls"`
}
