package guardian

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftedeschi/marxpress/internal/models"
)

const mainSnippet = `<figure class="element element-image">` +
	`<img src="https://media.example.com/img.jpg" alt="">` +
	`<figcaption>` +
	`<span class="element-image__caption">A march in Berlin</span>` +
	`<span class="element-image__credit">Photograph: Reuters</span>` +
	`</figcaption></figure>`

func searchResponse(results string) string {
	return fmt.Sprintf(`{"response":{"status":"ok","results":[%s]}}`, results)
}

func wellFormedItem(title string) string {
	return fmt.Sprintf(`{
		"webPublicationDate": "2026-08-27T10:30:00Z",
		"sectionId": "world",
		"sectionName": "World news",
		"webTitle": %q,
		"webUrl": "https://www.theguardian.com/world/a",
		"fields": {
			"byline": "Jane Smith",
			"trailText": "A short subtitle for the article",
			"bodyText": "The full body of the article.",
			"lang": "en",
			"shortUrl": "https://gu.com/p/abc",
			"main": %q
		},
		"tags": [
			{"type": "keyword", "webTitle": "Germany"},
			{"type": "contributor", "webTitle": "Jane Smith"},
			{"type": "keyword", "webTitle": "Protest"}
		]
	}`, title, mainSnippet)
}

func TestFetchSectionQueryParameters(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "world", q.Get("section"))
		assert.Equal(t, "newest", q.Get("order-by"))
		assert.Equal(t, "20", q.Get("page-size"))
		assert.Equal(t, "all", q.Get("show-fields"))
		assert.Equal(t, "keyword", q.Get("show-tags"))
		assert.Equal(t, "test-key", q.Get("api-key"))

		fmt.Fprint(w, searchResponse(wellFormedItem("Something happened")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	candidates := client.FetchSection(context.Background(), "world")

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, "Something happened", c.Title)
	assert.Equal(t, "Jane Smith", c.Author)
	assert.Equal(t, "A short subtitle for the article", c.Subtitle)
	assert.Equal(t, "world", c.SectionID)
	assert.Equal(t, "https://media.example.com/img.jpg", c.ImgURL)
	assert.Equal(t, "A march in Berlin", c.ImgDescr)
	assert.Equal(t, "Photograph: Reuters", c.ImgCred)
	assert.Equal(t, "germany,protest", c.Tags)
	assert.Equal(t, time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC), c.Date)
}

func TestFetchSectionSkipsMalformedItems(t *testing.T) {
	t.Parallel()

	missingByline := `{
		"webPublicationDate": "2026-08-27T10:30:00Z",
		"sectionId": "world",
		"sectionName": "World news",
		"webTitle": "No author here",
		"webUrl": "https://www.theguardian.com/world/b",
		"fields": {
			"trailText": "Subtitle",
			"bodyText": "Body",
			"lang": "en",
			"shortUrl": "https://gu.com/p/def",
			"main": ""
		},
		"tags": []
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, searchResponse(missingByline+","+wellFormedItem("Kept article")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	candidates := client.FetchSection(context.Background(), "world")

	require.Len(t, candidates, 1, "malformed item skipped, rest of batch kept")
	assert.Equal(t, "Kept article", candidates[0].Title)
}

func TestFetchSectionNonOKStatusYieldsEmptyBatch(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	assert.Empty(t, client.FetchSection(context.Background(), "world"))
	assert.Equal(t, 1, calls, "no retry; the polling cadence is the retry")
}

func TestFetchSectionTransportErrorYieldsEmptyBatch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-key")
	assert.Empty(t, client.FetchSection(context.Background(), "world"))
}

func TestExtractImageDefaults(t *testing.T) {
	t.Parallel()

	imgURL, imgDescr, imgCred := extractImage("")
	assert.Equal(t, models.NullMarker, imgURL)
	assert.Equal(t, models.NullMarker, imgDescr)
	assert.Equal(t, models.NullMarker, imgCred)

	// Each sub-field is independently optional.
	imgURL, imgDescr, imgCred = extractImage(`<figure><img src="https://media.example.com/x.jpg"></figure>`)
	assert.Equal(t, "https://media.example.com/x.jpg", imgURL)
	assert.Equal(t, models.NullMarker, imgDescr)
	assert.Equal(t, models.NullMarker, imgCred)
}

func TestExtractTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", extractTags(nil))
	assert.Equal(t, "", extractTags([]models.GuardianTag{{Type: "contributor", WebTitle: "Someone"}}))
	assert.Equal(t, "economy,trade unions", extractTags([]models.GuardianTag{
		{Type: "keyword", WebTitle: "Economy"},
		{Type: "keyword", WebTitle: "Trade Unions"},
	}))
}

func TestCandidateFromResultMissingFieldsBlock(t *testing.T) {
	t.Parallel()

	_, err := candidateFromResult(models.GuardianResult{})
	assert.ErrorContains(t, err, "fields")

	subtitle := "Subtitle"
	result := models.GuardianResult{
		WebPublicationDate: "not-a-date",
		Fields: &models.GuardianFields{
			Byline:    &subtitle,
			TrailText: &subtitle,
			BodyText:  &subtitle,
			Lang:      &subtitle,
			ShortURL:  &subtitle,
			Main:      &subtitle,
		},
	}
	_, err = candidateFromResult(result)
	assert.ErrorContains(t, err, "webPublicationDate")
}
