package tmdb

// PagedResponse is the envelope for list endpoints (discover, trending, search, similar)
type PagedResponse struct {
	Page         int        `json:"page"`
	Results      []MovieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// MovieDTO is a movie as returned by TMDB. Summary endpoints carry genre_ids,
// the detail endpoint carries genres, runtime and overview.
type MovieDTO struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Overview     string     `json:"overview,omitempty"`
	PosterPath   string     `json:"poster_path"`
	BackdropPath string     `json:"backdrop_path"`
	ReleaseDate  string     `json:"release_date,omitempty"`
	VoteAverage  float64    `json:"vote_average"`
	Popularity   float64    `json:"popularity,omitempty"`
	GenreIDs     []int      `json:"genre_ids,omitempty"`
	Genres       []GenreDTO `json:"genres,omitempty"`
	Runtime      int        `json:"runtime,omitempty"`
}

// GenreDTO is a genre entry
type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the response from /genre/movie/list
type GenreListResponse struct {
	Genres []GenreDTO `json:"genres"`
}

// CreditsResponse is the response from /movie/{id}/credits
type CreditsResponse struct {
	ID   int       `json:"id"`
	Cast []CastDTO `json:"cast"`
}

// CastDTO is a cast entry
type CastDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// ErrorResponse is the body TMDB returns with non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
