package tmdb

import "fmt"

// MediaType distinguishes movie and TV catalog entries.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType validates a media type string from user input.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaTypeMovie, MediaTypeTV:
		return MediaType(s), nil
	}
	return "", fmt.Errorf("invalid media type %q", s)
}

// MediaItem is a single catalog entry as returned by listing endpoints.
// Movies populate Title/ReleaseDate, TV shows populate Name/FirstAirDate.
type MediaItem struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	PosterPath   *string `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
}

// Page is a paginated listing response.
type Page struct {
	Page         int         `json:"page"`
	Results      []MediaItem `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// Genre is a catalog genre reference.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// genreListResponse is the JSON response for /genre/{type}/list.
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// Company is a production company reference on a detail record.
type Company struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

// Country is a production country reference on a detail record.
type Country struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

// Language is a spoken language reference on a detail record.
type Language struct {
	ISO6391 string `json:"iso_639_1"`
	Name    string `json:"name"`
}

// MovieDetails is the full detail record for a movie.
type MovieDetails struct {
	ID                  int        `json:"id"`
	Title               string     `json:"title"`
	Overview            string     `json:"overview"`
	ReleaseDate         string     `json:"release_date"`
	PosterPath          *string    `json:"poster_path"`
	BackdropPath        *string    `json:"backdrop_path"`
	VoteAverage         float64    `json:"vote_average"`
	VoteCount           int        `json:"vote_count"`
	Runtime             int        `json:"runtime"`
	Genres              []Genre    `json:"genres"`
	ProductionCompanies []Company  `json:"production_companies"`
	ProductionCountries []Country  `json:"production_countries"`
	SpokenLanguages     []Language `json:"spoken_languages"`
	Budget              int64      `json:"budget"`
	Revenue             int64      `json:"revenue"`
	Status              string     `json:"status"`
	Tagline             *string    `json:"tagline"`
	Homepage            *string    `json:"homepage"`
}

// TVDetails is the full detail record for a TV show.
type TVDetails struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Overview         string    `json:"overview"`
	FirstAirDate     string    `json:"first_air_date"`
	LastAirDate      string    `json:"last_air_date"`
	PosterPath       *string   `json:"poster_path"`
	BackdropPath     *string   `json:"backdrop_path"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	NumberOfSeasons  int       `json:"number_of_seasons"`
	NumberOfEpisodes int       `json:"number_of_episodes"`
	Genres           []Genre   `json:"genres"`
	Seasons          []Season  `json:"seasons"`
	Status           string    `json:"status"`
	Tagline          *string   `json:"tagline"`
	Homepage         *string   `json:"homepage"`
	InProduction     bool      `json:"in_production"`
	Networks         []Company `json:"networks"`
}

// Season is a season summary as embedded in TVDetails.
type Season struct {
	ID           int     `json:"id"`
	SeasonNumber int     `json:"season_number"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	AirDate      string  `json:"air_date"`
	EpisodeCount int     `json:"episode_count"`
	PosterPath   *string `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
}

// SeasonDetails is the full detail record for a single season.
type SeasonDetails struct {
	ID           int       `json:"id"`
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	AirDate      string    `json:"air_date"`
	PosterPath   *string   `json:"poster_path"`
	VoteAverage  float64   `json:"vote_average"`
	Episodes     []Episode `json:"episodes"`
}

// Episode is a single episode record.
type Episode struct {
	ID            int     `json:"id"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	StillPath     *string `json:"still_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Runtime       int     `json:"runtime"`
}

// Person is a person entry as returned by people search.
type Person struct {
	ID                 int         `json:"id"`
	Name               string      `json:"name"`
	ProfilePath        *string     `json:"profile_path"`
	KnownForDepartment string      `json:"known_for_department"`
	Popularity         float64     `json:"popularity"`
	KnownFor           []MediaItem `json:"known_for,omitempty"`
}

// PersonPage is a paginated people listing response.
type PersonPage struct {
	Page         int      `json:"page"`
	Results      []Person `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// PersonDetails is the full detail record for a person.
type PersonDetails struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	Birthday           *string `json:"birthday"`
	Deathday           *string `json:"deathday"`
	PlaceOfBirth       *string `json:"place_of_birth"`
	ProfilePath        *string `json:"profile_path"`
	KnownForDepartment string  `json:"known_for_department"`
	Popularity         float64 `json:"popularity"`
}

// apiError is the TMDB error response body.
type apiError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
