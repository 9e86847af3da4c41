package loader

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CongestionHeader is the canonical name of the congestion score column.
const CongestionHeader = "混雑度（0〜100）"

// Canonical source headers of the two input files.
const (
	HeaderSpotName    = "スポット名"
	HeaderCity        = "都市名"
	HeaderLatitude    = "緯度"
	HeaderLongitude   = "経度"
	HeaderAlternative = "代替スポット"
	HeaderTimeSlot    = "時間帯"
)

var congestionMarkers = []string{"混雑度", "congestion"}

// column aliases, matched after normalizeKey
var (
	spotNameAliases    = []string{HeaderSpotName, "name", "spot", "spotname"}
	cityAliases        = []string{HeaderCity, "city", "cityname"}
	latitudeAliases    = []string{HeaderLatitude, "latitude", "lat"}
	longitudeAliases   = []string{HeaderLongitude, "longitude", "lon", "lng"}
	alternativeAliases = []string{HeaderAlternative, "alternative", "alt", "alternativespot"}
	timeSlotAliases    = []string{HeaderTimeSlot, "timeslot", "time", "slot"}
	scoreAliases       = []string{CongestionHeader}
)

// NormalizeCongestionHeader returns a copy of t with trimmed headers and, unless the
// canonical score header is already present, the first header mentioning congestion
// renamed to CongestionHeader.
func NormalizeCongestionHeader(t *Table) *Table {
	header := make([]string, len(t.Header))
	for i, h := range t.Header {
		header[i] = strings.TrimSpace(h)
	}

	if columnIndex(header, scoreAliases) < 0 {
		for i, h := range header {
			if isCongestionHeader(h) {
				header[i] = CongestionHeader
				break
			}
		}
	}

	return &Table{
		Path:   t.Path,
		Header: header,
		Rows:   t.Rows,
		Lines:  t.Lines,
	}
}

func isCongestionHeader(h string) bool {
	key := strings.ToLower(norm.NFKC.String(h))
	for _, m := range congestionMarkers {
		if strings.Contains(key, m) {
			return true
		}
	}
	return false
}

// normalizeKey folds width, case and separators so "Spot Name", "spot_name" and
// "ｓｐｏｔｎａｍｅ" compare equal.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "", ".", "")
	return replacer.Replace(s)
}

// columnIndex returns the index of the first header matching any alias, or -1.
func columnIndex(header []string, aliases []string) int {
	for i, h := range header {
		key := normalizeKey(h)
		for _, a := range aliases {
			if key == normalizeKey(a) {
				return i
			}
		}
	}
	return -1
}
