package loader

import (
	"strconv"
	"strings"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// DecodeSpots converts a spots table into Spot values in file order.
func DecodeSpots(t *Table) ([]models.Spot, error) {
	nameCol, err := requireColumn(t, spotNameAliases, HeaderSpotName)
	if err != nil {
		return nil, err
	}
	cityCol, err := requireColumn(t, cityAliases, HeaderCity)
	if err != nil {
		return nil, err
	}
	latCol, err := requireColumn(t, latitudeAliases, HeaderLatitude)
	if err != nil {
		return nil, err
	}
	lonCol, err := requireColumn(t, longitudeAliases, HeaderLongitude)
	if err != nil {
		return nil, err
	}
	altCol := columnIndex(t.Header, alternativeAliases)

	spots := make([]models.Spot, 0, len(t.Rows))
	for i := range t.Rows {
		s := models.Spot{
			Name:        strings.TrimSpace(t.Cell(i, nameCol)),
			City:        strings.TrimSpace(t.Cell(i, cityCol)),
			Alternative: strings.TrimSpace(t.Cell(i, altCol)),
		}

		latRaw := strings.TrimSpace(t.Cell(i, latCol))
		lonRaw := strings.TrimSpace(t.Cell(i, lonCol))
		if latRaw != "" {
			if s.Latitude, err = parseNumber(t, i, latCol, latRaw); err != nil {
				return nil, err
			}
		}
		if lonRaw != "" {
			if s.Longitude, err = parseNumber(t, i, lonCol, lonRaw); err != nil {
				return nil, err
			}
		}
		s.HasLocation = latRaw != "" && lonRaw != ""

		spots = append(spots, s)
	}

	return spots, nil
}

// DecodeCongestion converts a congestion table into samples in file order. The table
// should already have passed through NormalizeCongestionHeader. hasScore is false
// when no score column exists; samples then carry a zero score. A blank score cell
// marks its sample Missing instead of failing the load.
func DecodeCongestion(t *Table) (samples []models.CongestionSample, hasScore bool, err error) {
	spotCol, err := requireColumn(t, spotNameAliases, HeaderSpotName)
	if err != nil {
		return nil, false, err
	}
	slotCol, err := requireColumn(t, timeSlotAliases, HeaderTimeSlot)
	if err != nil {
		return nil, false, err
	}
	scoreCol := columnIndex(t.Header, scoreAliases)
	hasScore = scoreCol >= 0

	samples = make([]models.CongestionSample, 0, len(t.Rows))
	for i := range t.Rows {
		sample := models.CongestionSample{
			SpotName: strings.TrimSpace(t.Cell(i, spotCol)),
			TimeSlot: strings.TrimSpace(t.Cell(i, slotCol)),
		}
		if hasScore {
			raw := strings.TrimSpace(t.Cell(i, scoreCol))
			if raw == "" {
				sample.Missing = true
			} else if sample.Score, err = parseNumber(t, i, scoreCol, raw); err != nil {
				return nil, false, err
			}
		}
		samples = append(samples, sample)
	}

	return samples, hasScore, nil
}

func requireColumn(t *Table, aliases []string, want string) (int, error) {
	idx := columnIndex(t.Header, aliases)
	if idx < 0 {
		return -1, &DataFormatError{Path: t.Path, Column: want, Reason: "missing column"}
	}
	return idx, nil
}

func parseNumber(t *Table, row, col int, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &DataFormatError{
			Path:   t.Path,
			Line:   t.Lines[row],
			Column: t.Header[col],
			Reason: "not a number: " + strconv.Quote(raw),
		}
	}
	return v, nil
}
