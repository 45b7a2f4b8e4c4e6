package ingesting

import (
	"regexp"
	"strings"
	"time"

	"github.com/leadreports/lead-report-bot/internal/domain"
	"github.com/leadreports/lead-report-bot/pkg/utils"
)

// leadMarker is the first line ApiX-Drive puts into every forwarded lead.
const leadMarker = "Новый лид из META Ads"

// fieldNotSet is recorded when a field is missing from the message, so
// report buckets stay well-defined.
const fieldNotSet = "—"

var (
	nameRe     = regexp.MustCompile(`(?im)Имя[:\s]+(.+)`)
	phoneRe    = regexp.MustCompile(`(?im)Номер телефона[:\s]+(.+)`)
	areaRe     = regexp.MustCompile(`(?im)Площадь помещения[:\s]+(.+)`)
	locationRe = regexp.MustCompile(`(?im)Локация[:\s]+(.+)`)
	mountRe    = regexp.MustCompile(`(?im)Как будут крепиться шторы[?\s]*\n?(.+)`)
	timingRe   = regexp.MustCompile(`(?im)Когда планируете установку[?\s]*\n?(.+)`)
	platformRe = regexp.MustCompile(`(?im)Платформа[:\s]+(.+)`)
)

// Parser extracts structured leads from forwarded META Ads messages.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the lead carried by the message, or nil when the message is
// not a lead at all. receivedAt becomes the lead's creation timestamp.
func (p *Parser) Parse(text string, receivedAt time.Time) (*domain.Lead, error) {
	if !strings.Contains(text, leadMarker) {
		return nil, nil
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	return &domain.Lead{
		ID:        id,
		Name:      extract(nameRe, text),
		Phone:     extract(phoneRe, text),
		Area:      extract(areaRe, text),
		Location:  extract(locationRe, text),
		Mount:     extract(mountRe, text),
		Timing:    extract(timingRe, text),
		Platform:  extract(platformRe, text),
		CreatedAt: receivedAt,
	}, nil
}

func extract(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return fieldNotSet
	}
	return strings.TrimSpace(m[1])
}
