package memory

import (
	"time"

	"rag-kb-be/internal/constant"

	"github.com/patrickmn/go-cache"
)

// JobStatusRepository tracks ingestion job statuses in process memory.
// It is not a durability guarantee: statuses are lost on restart and are
// not visible across processes. go-cache serializes access internally.
type JobStatusRepository struct {
	cache *cache.Cache
}

func NewJobStatusRepository() *JobStatusRepository {
	// Statuses expire a day after their last update, purged hourly.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &JobStatusRepository{
		cache: c,
	}
}

func (r *JobStatusRepository) Set(jobId, status string) {
	r.cache.Set(jobId, status, cache.DefaultExpiration)
}

// Get reports the job status, or the "unknown" sentinel for ids that
// were never recorded or have expired.
func (r *JobStatusRepository) Get(jobId string) string {
	if x, found := r.cache.Get(jobId); found {
		return x.(string)
	}
	return constant.JobStatusUnknown
}
