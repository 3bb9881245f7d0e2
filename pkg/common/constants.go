package common

const (
	RedisStreamSentimentUpdate = "sentiment.update"

	// RedisKeySentimentCurrent caches the current sentiment record of a symbol.
	RedisKeySentimentCurrent = "sentiment:current:%s"
	// RedisKeySentimentDetailed caches the detailed sentiment payload of a symbol.
	RedisKeySentimentDetailed = "sentiment:detailed:%s"

	SourceAggregated = "aggregated"
	SourceSimulated  = "simulated"

	// NewsAPIKeyPlaceholder is the value shipped in sample configs; it is treated as no key.
	NewsAPIKeyPlaceholder = "your_news_api_key"
)
