package telegram

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/pkg/utils"
)

const maxMessageLen = 4090

// FormatMarketOverviewForTelegram formats the market overview into one or more Markdown
// messages, each below the Telegram length limit. Symbols are listed alphabetically.
func FormatMarketOverviewForTelegram(overview dto.MarketOverview) []string {
	if len(overview.IndividualSentiments) == 0 {
		return []string{"No sentiment data available today."}
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString("📰 *Daily Market Sentiment* 📰\n")
			currentMessage.WriteString(fmt.Sprintf("%s *Overall:* %s (%.3f)\n",
				sentimentIcon(string(overview.OverallSentiment)), overview.OverallSentiment, overview.AverageCompoundScore))
			currentMessage.WriteString(fmt.Sprintf("%s\n\n", utils.PrettyDate(overview.Timestamp)))
		} else {
			currentMessage.WriteString(fmt.Sprintf("---*Daily Market Sentiment Part %d*---\n\n", part))
		}
	}
	startNewPart()

	symbols := make([]string, 0, len(overview.IndividualSentiments))
	for symbol := range overview.IndividualSentiments {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		record := overview.IndividualSentiments[symbol]

		var entry strings.Builder
		entry.WriteString(fmt.Sprintf("📈 *%s*\n", symbol))
		entry.WriteString(fmt.Sprintf("%s *Sentiment:* %s (%.3f)\n",
			sentimentIcon(string(record.SentimentLabel)), record.SentimentLabel, record.CompoundScore))
		entry.WriteString(fmt.Sprintf("🗞 *News:* %d (%s)\n\n", record.NewsCount, record.Source))

		entryString := entry.String()
		if currentMessage.Len()+len(entryString) > maxMessageLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entryString)
	}

	return append(messages, currentMessage.String())
}

func sentimentIcon(label string) string {
	switch strings.ToLower(label) {
	case "positive", "bullish":
		return "😊"
	case "negative", "bearish":
		return "😟"
	default:
		return "😐"
	}
}

// FormatErrorAlertMessage formats a job failure for Telegram.
func FormatErrorAlertMessage(t time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(t), errType, errMsg, data)
}
