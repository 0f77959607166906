package dto

type RateMovieRequest struct {
	Score int `json:"score" binding:"required,min=1,max=10"`
}

type RatingResponse struct {
	MovieID       int64   `json:"movie_id"`
	Score         int     `json:"score"`
	AverageRating float64 `json:"average_rating"`
}
