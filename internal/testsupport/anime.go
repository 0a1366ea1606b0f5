package testsupport

import (
	"net/url"

	"animelib/internal/catalog"
)

// Anime builds a catalog entry with a cover URL rooted at imageBase.
func Anime(malID int64, title, imageBase string) catalog.Anime {
	episodes := 12
	score := 7.5
	from := "2020-01-01T00:00:00+00:00"
	anime := catalog.Anime{
		MalID:    malID,
		Title:    title,
		Type:     "TV",
		Episodes: &episodes,
		Score:    &score,
		Aired:    catalog.Aired{From: &from},
		Studios:  []catalog.Resource{{Name: "Studio " + title}},
	}
	if imageBase != "" {
		anime.Images.WebP.LargeImageURL = imageBase + "/" + url.PathEscape(title) + ".webp"
	}
	return anime
}
