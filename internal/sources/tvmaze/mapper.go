package tvmaze

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/akarpo/showatlas/ingester/internal/models"
)

// MapToShow converts a raw catalog show to the Show model. Field-level
// problems degrade to nil values; only a missing title can make the
// resulting record invalid.
func MapToShow(raw Show) *models.Show {
	summary := stripHTML(raw.Summary)

	show := &models.Show{
		Title:           truncate(raw.Name, models.MaxTitleLen),
		Description:     optional(summary),
		Genre:           optional(truncate(strings.Join(raw.Genres, ", "), models.MaxGenreLen)),
		Status:          MapStatus(raw.Status),
		Rating:          raw.Rating.Average,
		Language:        optional(truncate(raw.Language, models.MaxLanguageLen)),
		RuntimeMinutes:  raw.Runtime,
		OriginalAirDate: parseDate(raw.Premiered),
		CountryOfOrigin: optional(truncate(countryOf(raw), models.MaxCountryLen)),
		PremieredAt:     parseDate(raw.Premiered),
		Summary:         optional(summary),
		NetworkName:     optional(truncate(networkOf(raw), models.MaxNetworkNameLen)),
	}
	if raw.ID > 0 {
		id := raw.ID
		show.TVMazeID = &id
	}
	if raw.Image != nil && raw.Image.Medium != "" {
		show.ImageURL = optional(truncate(raw.Image.Medium, models.MaxImageURLLen))
	}
	return show
}

// MapToEpisode converts a raw episode to the Episode model for a show.
func MapToEpisode(raw Episode, showID int64) *models.Episode {
	ep := &models.Episode{
		ShowID:  showID,
		Title:   optional(truncate(raw.Name, models.MaxTitleLen)),
		AirDate: parseDate(raw.AirDate),
		Runtime: raw.Runtime,
		Summary: optional(stripHTML(raw.Summary)),
	}
	if raw.ID > 0 {
		id := raw.ID
		ep.TVMazeID = &id
	}
	if raw.Season > 0 {
		season := raw.Season
		ep.SeasonNumber = &season
	}
	if raw.Number != nil && *raw.Number > 0 {
		ep.EpisodeNumber = raw.Number
	}
	return ep
}

// MapStatus maps the upstream status vocabulary onto the internal
// three-value lifecycle. Unknown or missing values default to upcoming.
func MapStatus(status string) models.ShowStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "running":
		return models.StatusRunning
	case "ended":
		return models.StatusEnded
	default:
		return models.StatusUpcoming
	}
}

// countryOf derives the country of origin from the broadcast network,
// falling back to the web channel.
func countryOf(raw Show) string {
	if raw.Network != nil && raw.Network.Country != nil {
		return raw.Network.Country.Name
	}
	if raw.WebChannel != nil && raw.WebChannel.Country != nil {
		return raw.WebChannel.Country.Name
	}
	return ""
}

// networkOf derives the carrying channel name with the same fallback order.
func networkOf(raw Show) string {
	if raw.Network != nil {
		return raw.Network.Name
	}
	if raw.WebChannel != nil {
		return raw.WebChannel.Name
	}
	return ""
}

// CountryCodeOf returns the two-letter country code of the channel that
// carries the show, or empty when unknown.
func CountryCodeOf(raw Show) string {
	if raw.Network != nil && raw.Network.Country != nil {
		return raw.Network.Country.Code
	}
	if raw.WebChannel != nil && raw.WebChannel.Country != nil {
		return raw.WebChannel.Country.Code
	}
	return ""
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes markup tags and decodes HTML entities. Upstream
// summaries arrive wrapped in <p> and friends.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseDate(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil
	}
	return &t
}
