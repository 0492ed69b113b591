package gedcom

import (
	"strconv"
	"strings"
)

var months = map[string]int64{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// BirthKey converts a GEDCOM date value into a sortable integer
// year*10000 + month*100 + day. Qualifiers (ABT, BEF, BET ... AND ...) are
// ignored and only the first date of a range counts. Missing parts are zero,
// and a value without a year yields 0, which sorts before every known date.
func BirthKey(value string) int64 {
	tokens := strings.Fields(strings.ToUpper(value))
	var day, month int64
	for k, tok := range tokens {
		if m, ok := months[tok]; ok {
			month = m
			continue
		}
		if slash := strings.IndexByte(tok, '/'); slash > 0 {
			tok = tok[:slash] // dual year such as 1750/51
		}
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		if n <= 31 && k+1 < len(tokens) {
			if _, next := months[tokens[k+1]]; next {
				day = n
				continue
			}
		}
		return n*10000 + month*100 + day
	}
	return 0
}
