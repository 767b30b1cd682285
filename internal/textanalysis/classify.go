package textanalysis

import "strings"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	// Auto 请求方显式要求自动判定类别/优先级
	Auto = "auto"
)

// Categorize 按关键词命中数选择类别。
// 关键词以子串方式匹配，平局取声明在前的类别，零命中返回 "other"。
func Categorize(text string) string {
	lower := strings.ToLower(text)
	best, bestScore := "other", 0
	for _, c := range categoryTable {
		if n := countKeywords(lower, c.keywords); n > bestScore {
			best, bestScore = c.category, n
		}
	}
	return best
}

// Prioritize 结合关键词、情感分与类别判定优先级。
func Prioritize(text, category string) string {
	lower := strings.ToLower(text)
	return decidePriority(
		countKeywords(lower, urgentKeywords),
		countKeywords(lower, highKeywords),
		countKeywords(lower, lowKeywords),
		Sentiment(lower),
		category,
	)
}

// decidePriority 判定顺序：urgent → high → low → medium
func decidePriority(urgent, high, low int, sentiment float64, category string) string {
	switch {
	case urgent > 0 || (sentiment < -0.6 && high > 0):
		return PriorityUrgent
	case high > low || sentiment < -0.4 || category == "electrical" || category == "plumbing":
		return PriorityHigh
	case low > high || sentiment > 0.2:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func countKeywords(lower string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			n++
		}
	}
	return n
}

// Suggestions 返回类别对应的前 3 条建议，末尾追加 TrailingSuggestion。
// 未收录的类别（mess、food 等）使用 "other" 的建议。
func Suggestions(category string) []string {
	list, ok := suggestionTable[category]
	if !ok {
		list = suggestionTable["other"]
	}
	n := len(list)
	if n > 3 {
		n = 3
	}
	out := make([]string, 0, n+1)
	out = append(out, list[:n]...)
	return append(out, TrailingSuggestion)
}

// Analysis 投诉文本分析结果
type Analysis struct {
	Category  string
	Priority  string
	Sentiment float64
}

// Analyze 投诉创建时的完整流水线。
// 文本为 title + " " + description；category/priority 为空或 "auto" 时自动判定，
// 情感分总是重新计算。
func Analyze(title, description, category, priority string) Analysis {
	text := title + " " + description
	if category == "" || category == Auto {
		category = Categorize(text)
	}
	if priority == "" || priority == Auto {
		priority = Prioritize(text, category)
	}
	return Analysis{
		Category:  category,
		Priority:  priority,
		Sentiment: Sentiment(text),
	}
}
