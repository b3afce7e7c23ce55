package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatWords formats a word count in human-readable form.
func FormatWords(words int) string {
	switch {
	case words == 1:
		return "1 word"
	case words < 10000:
		return fmt.Sprintf("%d words", words)
	default:
		return fmt.Sprintf("~%dk words", (words+500)/1000)
	}
}
