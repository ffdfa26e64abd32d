package models

// GuardianSearchResponse mirrors the content-search envelope of the Guardian
// API. Fields the extractor treats as required are pointers so that an
// absent key is distinguishable from an empty value.
type GuardianSearchResponse struct {
	Response struct {
		Status  string           `json:"status"`
		Results []GuardianResult `json:"results"`
	} `json:"response"`
}

type GuardianResult struct {
	WebPublicationDate string          `json:"webPublicationDate"`
	SectionID          string          `json:"sectionId"`
	SectionName        string          `json:"sectionName"`
	WebTitle           string          `json:"webTitle"`
	WebURL             string          `json:"webUrl"`
	Fields             *GuardianFields `json:"fields"`
	Tags               []GuardianTag   `json:"tags"`
}

type GuardianFields struct {
	Byline    *string `json:"byline"`
	TrailText *string `json:"trailText"`
	BodyText  *string `json:"bodyText"`
	Lang      *string `json:"lang"`
	ShortURL  *string `json:"shortUrl"`
	Main      *string `json:"main"`
}

type GuardianTag struct {
	Type     string `json:"type"`
	WebTitle string `json:"webTitle"`
}
