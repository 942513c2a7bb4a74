package langdetect

import "strings"

// EngineTag extracts a Quarto executable-cell engine identifier from a
// fenced code block's info string. An executable cell is fenced with
// a brace-wrapped engine tag (`{r}`, `{python}`, `{ojs}`), which
// distinguishes it from a plain syntax-highlighting info string like
// `python` or `r`. Returns "" for a non-executable code block.
func EngineTag(info string) string {
	info = strings.TrimSpace(info)
	if !strings.HasPrefix(info, "{") || !strings.HasSuffix(info, "}") {
		return ""
	}
	inner := strings.TrimSpace(info[1 : len(info)-1])
	if inner == "" {
		return ""
	}
	fields := strings.Fields(inner)
	return strings.ToLower(strings.TrimPrefix(fields[0], "."))
}
