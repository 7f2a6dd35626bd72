package reply

import "strings"

// tokenRunes is the delta size the scripted path streams with, small enough
// to exercise multi-event consumption on the client side.
const tokenRunes = 6

// Scripted returns a deterministic supportive reply for the given message.
// specialty, when non-empty, names the matched direction and is woven into
// the suggestion.
func Scripted(locale, userMessage, specialty string) string {
	if strings.HasPrefix(strings.ToLower(locale), "zh") {
		var b strings.Builder
		b.WriteString("谢谢你愿意说出这些，听起来这段时间确实不容易。")
		if specialty != "" {
			b.WriteString("你提到的情况和「")
			b.WriteString(specialty)
			b.WriteString("」方向比较相关，下面为你推荐了几位擅长这个领域的咨询师。")
		} else {
			b.WriteString("可以多和我说说具体发生了什么吗？")
		}
		b.WriteString("无论如何，你的感受都值得被认真对待。")
		return b.String()
	}

	var b strings.Builder
	b.WriteString("Thank you for sharing this — it sounds like things have been hard lately. ")
	if specialty != "" {
		b.WriteString("What you described relates to " + specialty + ", so I've suggested a few counselors who focus on it. ")
	} else {
		b.WriteString("Could you tell me a bit more about what happened? ")
	}
	b.WriteString("However it goes, what you feel deserves to be taken seriously.")
	return b.String()
}

// SplitTokens cuts a reply into the incremental deltas the streaming path
// emits. Splitting is by rune so multi-byte text never tears.
func SplitTokens(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(runes)/tokenRunes+1)
	for start := 0; start < len(runes); start += tokenRunes {
		end := start + tokenRunes
		if end > len(runes) {
			end = len(runes)
		}
		tokens = append(tokens, string(runes[start:end]))
	}
	return tokens
}
