package transliteration

import (
	"fmt"
	"regexp"
	"strings"
)

const promptHeader = `Transliterate the following names/text from English to Hindi (Devanagari script).

IMPORTANT INSTRUCTIONS:
1. Transliterate the COMPLETE name/text provided - do not skip any parts
2. If a name has multiple parts (first, middle, last), transliterate ALL parts
3. If the same word appears twice (like "Ravi Ravi"), only transliterate once as "रवि"
4. Return each transliteration on a separate line in the same order
5. Do not include numbers or any other text
6. Only return the Hindi (Devanagari) transliteration

Examples:
- "Rahul Sharma" → "राहुल शर्मा" (both parts)
- "Rahul Dua" → "राहुल दुआ" (both parts)
- "M.S. Dhoni" → "एम.एस. धोनी" (all parts)
- "Ravi Ravi" → "रवि" (duplicate removed)
- "SK Finance" → "एस.के. फाइनेंस" (both words)

Names/Text to transliterate:
`

// buildPrompt enumerates texts 1-indexed under the instruction block
func buildPrompt(texts []string) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for i, text := range texts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, text)
	}
	return b.String()
}

// enumeration matches a "1. " or "2) " marker the model sometimes echoes back
var enumeration = regexp.MustCompile(`^\d+\s*[.)]\s+`)

// parseLines splits a model response into trimmed, non-empty lines.
// Line i belongs to input i; no content matching is attempted.
func parseLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(enumeration.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// cacheKeyPrefix namespaces memo entries per model so a model change does
// not serve stale output
func cacheKeyPrefix(model string) string {
	if model == "" {
		return "translit:hi:"
	}
	return "translit:hi:" + model + ":"
}

// cacheKey normalizes text so repeat names share a memo entry
func cacheKey(prefix, text string) string {
	return prefix + strings.ToLower(strings.Join(strings.Fields(text), " "))
}
