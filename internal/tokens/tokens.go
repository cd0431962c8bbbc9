package tokens

// EstimateText approximates tokens for a given text using a 4 characters per
// token heuristic. Deliberately coarse: the filter's context budget is an
// estimate, not an exact tokenizer count.
func EstimateText(text string) int {
	if text == "" {
		return 0
	}
	return len([]rune(text)) / 4
}
