package models

import "time"

// NullMarker is the explicit placeholder stored for an image sub-field that
// the upstream article snippet does not carry. The quality filter keys on it.
const NullMarker = "NULL"

// Candidate is a single article record fetched from the Guardian content API
// before enrichment.
type Candidate struct {
	Date        time.Time `json:"date"`
	SectionID   string    `json:"section_id"`
	SectionName string    `json:"section_name"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Subtitle    string    `json:"subtitle"`
	Body        string    `json:"body"`
	ImgURL      string    `json:"img_url"`
	ImgDescr    string    `json:"img_descr"`
	ImgCred     string    `json:"img_cred"`
	Language    string    `json:"language"`
	URL         string    `json:"url"`
	ShortURL    string    `json:"short_url"`
	Tags        string    `json:"tags"`
}

// EnrichedArticle is a Candidate plus the generated commentary and its
// sentiment verdict. Created once per polling cycle, never mutated after.
type EnrichedArticle struct {
	Candidate

	MarxComment    string  `json:"marx_comment"`
	SentimentScore float64 `json:"sentiment_score"`
	Judgement      string  `json:"marx_judgement"`
}

// ReviewEntry is the display projection served by the webapp: the subset of
// stored columns a review page needs, internal fields excluded.
type ReviewEntry struct {
	Date        time.Time `json:"date"`
	SectionName string    `json:"section_name"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Subtitle    string    `json:"subtitle"`
	ImgURL      string    `json:"img_url"`
	ImgDescr    string    `json:"img_descr"`
	ImgCred     string    `json:"img_cred"`
	URL         string    `json:"url"`
	ShortURL    string    `json:"short_url"`
	MarxComment string    `json:"marx_comment"`
	Judgement   string    `json:"marx_judgement"`
}

// GenerationConfig carries the decoding parameters sent to the model server.
// Values are fixed per call-site, not tuned at runtime.
type GenerationConfig struct {
	MinLength         int     `json:"min_length"`
	MaxLength         int     `json:"max_length"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size"`
}
