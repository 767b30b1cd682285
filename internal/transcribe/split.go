package transcribe

import (
	"strings"
	"time"
)

// DefaultLocation 语音投诉未给出位置时的占位值
const DefaultLocation = "To be specified"

// SplitTranscript 将识别文本拆为标题与描述：
// 标题取第一个 "." 之前的部分，描述取其后全部内容。
// 只有一句话时描述取这句话，标题为带时间戳的占位标题。
func SplitTranscript(text string, now time.Time) (title, description string) {
	title, rest, _ := strings.Cut(strings.TrimSpace(text), ".")
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(rest)

	placeholder := "Voice Complaint " + now.Format("2006-01-02 15:04")
	switch {
	case description == "":
		return placeholder, title
	case title == "":
		return placeholder, description
	}
	return title, description
}
