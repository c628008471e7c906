package spotify

// Track is a flat catalog record for search and recommendation results.
type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	ID     string `json:"id"`
	URI    string `json:"uri"`
}

// TrackDetail carries the extra fields returned by a direct track lookup.
type TrackDetail struct {
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album"`
	DurationMS int      `json:"duration_ms"`
	Popularity int      `json:"popularity"`
	URI        string   `json:"uri"`
}

// Artist is a flat artist record.
type Artist struct {
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers"`
	URI        string   `json:"uri"`
}

// Playlist is a playlist summary with its leading tracks.
type Playlist struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Tracks      []Track `json:"tracks"`
}

// Device is a playback device record.
type Device struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsActive bool   `json:"is_active"`
}

// trackObject is the wire shape shared by several catalog endpoints.
type trackObject struct {
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	ID         string `json:"id"`
	URI        string `json:"uri"`
	DurationMS int    `json:"duration_ms"`
	Popularity int    `json:"popularity"`
}

func (t trackObject) toTrack() Track {
	artist := ""
	if len(t.Artists) > 0 {
		artist = t.Artists[0].Name
	}
	return Track{
		Name:   t.Name,
		Artist: artist,
		Album:  t.Album.Name,
		ID:     t.ID,
		URI:    t.URI,
	}
}

func (t trackObject) toDetail() TrackDetail {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	return TrackDetail{
		Name:       t.Name,
		Artists:    artists,
		Album:      t.Album.Name,
		DurationMS: t.DurationMS,
		Popularity: t.Popularity,
		URI:        t.URI,
	}
}
