package models

// ShowStatus tracks where a show is in its broadcast lifecycle.
type ShowStatus string

const (
	StatusUpcoming ShowStatus = "upcoming"
	StatusRunning  ShowStatus = "running"
	StatusEnded    ShowStatus = "ended"
)

// ReleaseType classifies a release-date entry.
type ReleaseType string

const (
	ReleasePremiere       ReleaseType = "premiere"
	ReleaseSeasonPremiere ReleaseType = "season_premiere"
	ReleaseSeasonFinale   ReleaseType = "season_finale"
	ReleaseSeriesFinale   ReleaseType = "series_finale"
	ReleaseEpisode        ReleaseType = "episode"
)

// DistributionType classifies how a distributor carries a show.
type DistributionType string

const (
	DistributionBroadcast DistributionType = "broadcast"
	DistributionStreaming DistributionType = "streaming"
	DistributionCable     DistributionType = "cable"
	DistributionSyndicate DistributionType = "syndication"
)

// RegionGlobal marks a distribution or release that is not scoped to a
// single country.
const RegionGlobal = "global"

// Column limits enforced by the store. The normalizer truncates to these
// before a record ever reaches validation.
const (
	MaxTitleLen       = 255
	MaxStatusLen      = 50
	MaxGenreLen       = 100
	MaxLanguageLen    = 50
	MaxNetworkNameLen = 100
	MaxImageURLLen    = 500
	MaxCountryLen     = 100
)
