package catalog

// Anime is one catalog record as returned by the search and detail endpoints.
type Anime struct {
	MalID         int64      `json:"mal_id"`
	URL           string     `json:"url"`
	Images        Images     `json:"images"`
	Title         string     `json:"title"`
	TitleEnglish  string     `json:"title_english"`
	TitleJapanese string     `json:"title_japanese"`
	Type          string     `json:"type"`
	Source        string     `json:"source"`
	Episodes      *int       `json:"episodes"`
	Status        string     `json:"status"`
	Aired         Aired      `json:"aired"`
	Duration      string     `json:"duration"`
	Rating        string     `json:"rating"`
	Score         *float64   `json:"score"`
	Rank          *int       `json:"rank"`
	Popularity    *int       `json:"popularity"`
	Synopsis      string     `json:"synopsis"`
	Background    string     `json:"background"`
	Season        string     `json:"season"`
	Year          *int       `json:"year"`
	Broadcast     Broadcast  `json:"broadcast"`
	Studios       []Resource `json:"studios"`
}

// Images groups the cover URLs per format.
type Images struct {
	JPG  ImageSet `json:"jpg"`
	WebP ImageSet `json:"webp"`
}

// ImageSet lists the cover sizes for one format.
type ImageSet struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url"`
	LargeImageURL string `json:"large_image_url"`
}

// Aired holds the ISO-8601 airing bounds; either may be absent.
type Aired struct {
	From   *string `json:"from"`
	To     *string `json:"to"`
	String string  `json:"string"`
}

// Broadcast is the weekly slot in Japanese time.
type Broadcast struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	String   string `json:"string"`
}

// Resource is a named catalog reference such as a studio.
type Resource struct {
	MalID int64  `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
}

// CoverURL returns the download source for the local cover image.
func (a Anime) CoverURL() string {
	return a.Images.WebP.LargeImageURL
}

// Studio returns the first listed studio, or "" when none is known.
func (a Anime) Studio() string {
	if len(a.Studios) == 0 {
		return ""
	}
	return a.Studios[0].Name
}

type listResponse struct {
	Data []Anime `json:"data"`
}

type itemResponse struct {
	Data Anime `json:"data"`
}
