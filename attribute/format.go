package attribute

import "strconv"

// formatFloat renders v the same way for every caller (Attribute.String,
// snapshot/csv.go) so CSV output and debug logging never disagree on
// precision.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
