package model

// Anime is a metadata record owned by the Jikan service. Only MalID, Title and the small
// image are guaranteed; every other field is frequently missing and nil means unknown.
type Anime struct {
	MalID        int         `json:"mal_id" jsonschema:"description=MyAnimeList id used by Jikan."`
	Title        string      `json:"title"`
	TitleEnglish *string     `json:"title_english,omitempty"`
	Synopsis     *string     `json:"synopsis,omitempty"`
	Images       AnimeImages `json:"images"`
	Score        *float64    `json:"score,omitempty" jsonschema:"minimum=0,maximum=10"`
	Year         *int        `json:"year,omitempty"`
	Episodes     *int        `json:"episodes,omitempty"`
	Type         *string     `json:"type,omitempty" jsonschema:"description=TV, Movie, OVA, ONA, Special or Music."`
	Status       *string     `json:"status,omitempty"`
}

// AnimeImages groups the image sets of an anime; only jpg is mapped.
type AnimeImages struct {
	JPG ImageURLs `json:"jpg"`
}

// ImageURLs holds the small and large variants of a cover.
type ImageURLs struct {
	ImageURL      string  `json:"image_url"`
	LargeImageURL *string `json:"large_image_url,omitempty"`
}

// Name prefers the English title.
func (a *Anime) Name() string {
	if a.TitleEnglish != nil && *a.TitleEnglish != "" {
		return *a.TitleEnglish
	}
	return a.Title
}

// Cover prefers the large image.
func (a *Anime) Cover() string {
	if l := a.Images.JPG.LargeImageURL; l != nil && *l != "" {
		return *l
	}
	return a.Images.JPG.ImageURL
}

// Pagination accompanies list responses.
type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
}

// AnimePage is a page of anime from GET top/anime, GET anime, or the backend's animes/search.php.
type AnimePage struct {
	Data       []Anime     `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// HasNext reports whether another page exists; unknown pagination counts as the last page.
func (p *AnimePage) HasNext() bool {
	return p.Pagination != nil && p.Pagination.HasNextPage
}

// AnimeByID is the body of GET anime/{id}.
type AnimeByID struct {
	Data Anime `json:"data"`
}
