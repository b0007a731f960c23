package results

// FormatNumberToolArgs represents the arguments for the format_number tool
type FormatNumberToolArgs struct {
	Value float64 `json:"value"`
}

// FormatNumberToolResult represents the result of the format_number tool
type FormatNumberToolResult struct {
	Arguments FormatNumberToolArgs `json:"arguments"`
	Formatted string               `json:"formatted"`
}
