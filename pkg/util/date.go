package util

import (
	"strings"
	"time"
)

// placeholders is ordered so that YYYY is replaced before YY.
var placeholders = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"hh", "15",
	"mm", "04",
	"ss", "05",
)

// FormatDateTpl formats t using a template with placeholders:
// YYYY, YY, MM, DD, hh (00-23), mm and ss. A zero time yields "".
//
//	FormatDateTpl(t, "YYYY.MM.DD")       // "2023.11.10"
//	FormatDateTpl(t, "DD/MM/YYYY hh:mm") // "10/11/2023 00:00"
func FormatDateTpl(t time.Time, tpl string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(placeholders.Replace(tpl))
}
