package tvmaze

// Show is the raw show object returned by the catalog API.
type Show struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Language   string   `json:"language"`
	Genres     []string `json:"genres"`
	Status     string   `json:"status"`
	Runtime    *int     `json:"runtime"`
	Premiered  string   `json:"premiered"`
	Rating     Rating   `json:"rating"`
	Network    *Channel `json:"network"`
	WebChannel *Channel `json:"webChannel"`
	Image      *Image   `json:"image"`
	Summary    string   `json:"summary"`
}

// Rating wraps the average score. Null upstream averages decode to nil.
type Rating struct {
	Average *float64 `json:"average"`
}

// Channel is a broadcast network or streaming web channel.
type Channel struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Country *Country `json:"country"`
}

// Country holds country naming for a channel.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Image holds the show artwork URLs.
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Episode is the raw episode object returned by the catalog API.
type Episode struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Number  *int   `json:"number"`
	AirDate string `json:"airdate"`
	Runtime *int   `json:"runtime"`
	Summary string `json:"summary"`
}

// ScheduleEntry is one entry of a daily schedule: an episode with its
// show embedded.
type ScheduleEntry struct {
	Episode
	Show *Show `json:"show"`
}
