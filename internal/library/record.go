package library

import "animelib/internal/catalog"

// Record is one stored anime, flattened from a catalog entry and linked to a
// local folder.
type Record struct {
	MalID         int64    `db:"mal_id" json:"mal_id"`
	LocalName     string   `db:"localName" json:"local_name"`
	Title         string   `db:"title" json:"title"`
	TitleEnglish  string   `db:"title_english" json:"title_english"`
	TitleJapanese string   `db:"title_japanese" json:"title_japanese"`
	Type          string   `db:"type" json:"type"`
	Source        string   `db:"source" json:"source"`
	Episodes      int      `db:"episodes" json:"episodes"`
	Status        string   `db:"status" json:"status"`
	AiredFrom     *string  `db:"aired_from" json:"aired_from"`
	AiredTo       *string  `db:"aired_to" json:"aired_to"`
	Duration      string   `db:"duration" json:"duration"`
	Rating        string   `db:"rating" json:"rating"`
	Score         *float64 `db:"score" json:"score"`
	Popularity    *int     `db:"popularity" json:"popularity"`
	Rank          *int     `db:"rank" json:"rank"`
	Background    string   `db:"background" json:"background"`
	Season        string   `db:"season" json:"season"`
	Year          *int     `db:"year" json:"year"`
	BroadcastDay  string   `db:"broadcast_day" json:"broadcast_day"`
	BroadcastTime string   `db:"broadcast_time" json:"broadcast_time"`
	Studio        string   `db:"studio" json:"studio"`
	ImageURL      string   `db:"image_url" json:"image_url"`
	UpdatedAt     string   `db:"updated_at" json:"updated_at"`
}

// RecordFromAnime links a catalog entry to linkKey. A missing episode count
// is stored as 1.
func RecordFromAnime(linkKey string, anime catalog.Anime) Record {
	episodes := 1
	if anime.Episodes != nil {
		episodes = *anime.Episodes
	}
	return Record{
		MalID:         anime.MalID,
		LocalName:     linkKey,
		Title:         anime.Title,
		TitleEnglish:  anime.TitleEnglish,
		TitleJapanese: anime.TitleJapanese,
		Type:          anime.Type,
		Source:        anime.Source,
		Episodes:      episodes,
		Status:        anime.Status,
		AiredFrom:     anime.Aired.From,
		AiredTo:       anime.Aired.To,
		Duration:      anime.Duration,
		Rating:        anime.Rating,
		Score:         anime.Score,
		Popularity:    anime.Popularity,
		Rank:          anime.Rank,
		Background:    anime.Background,
		Season:        anime.Season,
		Year:          anime.Year,
		BroadcastDay:  anime.Broadcast.Day,
		BroadcastTime: anime.Broadcast.Time,
		Studio:        anime.Studio(),
		ImageURL:      anime.CoverURL(),
	}
}
