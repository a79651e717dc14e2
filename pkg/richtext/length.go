package richtext

// MaxContentLength is the upstream limit on a single text run.
const MaxContentLength = 2000

// SplitLongRuns breaks text runs whose content exceeds max runes into
// consecutive runs with the same annotations and link.
func SplitLongRuns(runs []RichText, max int) []RichText {
	if max <= 0 {
		return runs
	}
	out := make([]RichText, 0, len(runs))
	for _, run := range runs {
		if run.Type != TypeText || run.Text == nil {
			out = append(out, run)
			continue
		}
		content := []rune(run.Text.Content)
		if len(content) <= max {
			out = append(out, run)
			continue
		}
		for start := 0; start < len(content); start += max {
			end := start + max
			if end > len(content) {
				end = len(content)
			}
			chunk := run
			txt := *run.Text
			txt.Content = string(content[start:end])
			chunk.Text = &txt
			chunk.PlainText = txt.Content
			out = append(out, chunk)
		}
	}
	return out
}
