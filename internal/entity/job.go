package entity

// JobType identifies a background job.
type JobType string

const (
	JobTypeSentimentRefresh   JobType = "SENTIMENT_REFRESH"
	JobTypeSentimentBroadcast JobType = "SENTIMENT_BROADCAST"
	JobTypeNewsCollect        JobType = "NEWS_COLLECT"
	JobTypeMarketDigest       JobType = "MARKET_DIGEST"
	JobTypeDataCleanup        JobType = "DATA_CLEANUP"
)

// Job status values reported by the scheduler.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)
