package guardian

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ftedeschi/marxpress/internal/models"
)

// missingFieldError identifies the exact key a malformed API item lacked,
// so a skipped item is distinguishable from a transport failure in the logs.
type missingFieldError struct {
	field string
}

func (e missingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.field)
}

// candidateFromResult extracts one Candidate from an API item. Any missing
// required field fails only this item; the rest of the batch proceeds.
func candidateFromResult(result models.GuardianResult) (models.Candidate, error) {
	if result.Fields == nil {
		return models.Candidate{}, missingFieldError{field: "fields"}
	}

	required := map[string]*string{
		"fields.byline":    result.Fields.Byline,
		"fields.trailText": result.Fields.TrailText,
		"fields.bodyText":  result.Fields.BodyText,
		"fields.lang":      result.Fields.Lang,
		"fields.shortUrl":  result.Fields.ShortURL,
		"fields.main":      result.Fields.Main,
	}
	for name, value := range required {
		if value == nil {
			return models.Candidate{}, missingFieldError{field: name}
		}
	}

	date, err := time.Parse(time.RFC3339, result.WebPublicationDate)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("malformed webPublicationDate %q: %w", result.WebPublicationDate, err)
	}

	imgURL, imgDescr, imgCred := extractImage(*result.Fields.Main)

	return models.Candidate{
		Date:        date,
		SectionID:   result.SectionID,
		SectionName: result.SectionName,
		Title:       result.WebTitle,
		Author:      *result.Fields.Byline,
		Subtitle:    *result.Fields.TrailText,
		Body:        *result.Fields.BodyText,
		ImgURL:      imgURL,
		ImgDescr:    imgDescr,
		ImgCred:     imgCred,
		Language:    *result.Fields.Lang,
		URL:         result.WebURL,
		ShortURL:    *result.Fields.ShortURL,
		Tags:        extractTags(result.Tags),
	}, nil
}

// extractImage pulls the main-image url, caption and credit out of the
// embedded HTML snippet. The three are independently optional; whatever is
// absent stays the explicit NULL marker.
func extractImage(mainHTML string) (imgURL, imgDescr, imgCred string) {
	imgURL, imgDescr, imgCred = models.NullMarker, models.NullMarker, models.NullMarker

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(mainHTML))
	if err != nil {
		return
	}

	if src, ok := doc.Find("img").First().Attr("src"); ok && src != "" {
		imgURL = src
	}
	if caption := strings.TrimSpace(doc.Find("span.element-image__caption").First().Text()); caption != "" {
		imgDescr = caption
	}
	if credit := strings.TrimSpace(doc.Find("span.element-image__credit").First().Text()); credit != "" {
		imgCred = credit
	}
	return
}

// extractTags joins the lowercased titles of all keyword tags with commas.
// No keyword tags yields the empty string, never an omitted field.
func extractTags(tags []models.GuardianTag) string {
	var keywords []string
	for _, tag := range tags {
		if tag.Type == "keyword" {
			keywords = append(keywords, strings.ToLower(tag.WebTitle))
		}
	}
	return strings.Join(keywords, ",")
}
