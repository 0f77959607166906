package service

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"gorm.io/gorm"

	"cinemavault/internal/cache"
	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/models"
	"cinemavault/internal/http-api/repository"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrPosterRequired = errors.New("poster image is required")
)

const moviePosterFolder = "MoviePosters"

type MovieService interface {
	GetAllMovies(ctx context.Context, userID string) ([]dto.MovieResponse, error)
	GetLatestMovies(ctx context.Context, count int, userID string) ([]dto.MovieResponse, error)
	GetTopRatedMovies(ctx context.Context, count int, userID string) ([]dto.MovieResponse, error)
	SearchMovies(ctx context.Context, term string, userID string) ([]dto.MovieResponse, error)
	GetMoviesByGenreID(ctx context.Context, genreID int64, userID string) ([]dto.MovieResponse, error)
	GetMovieDetailsByID(ctx context.Context, id int64, userID string) (*dto.MovieResponse, error)
	AddMovie(ctx context.Context, in dto.CreateMovieDTO, poster *multipart.FileHeader, req *http.Request) (*dto.MovieResponse, error)
	UpdateMovie(ctx context.Context, id int64, in dto.UpdateMovieDTO, poster *multipart.FileHeader, req *http.Request) (*dto.MovieResponse, error)
	DeleteMovie(ctx context.Context, id int64) error
}

type movieService struct {
	movieRepo  repository.MovieRepository
	genreRepo  repository.GenreRepository
	savedRepo  repository.SavedMovieRepository
	images     ImageStore
	movieCache *cache.MovieCache
	logger     *slog.Logger
}

func NewMovieService(
	movieRepo repository.MovieRepository,
	genreRepo repository.GenreRepository,
	savedRepo repository.SavedMovieRepository,
	images ImageStore,
	movieCache *cache.MovieCache,
	logger *slog.Logger,
) MovieService {
	return &movieService{
		movieRepo:  movieRepo,
		genreRepo:  genreRepo,
		savedRepo:  savedRepo,
		images:     images,
		movieCache: movieCache,
		logger:     logger,
	}
}

// mapMoviesToDTOs is the shared enrichment step: genres attached per movie,
// is_saved resolved per movie for the authenticated user, always false for
// anonymous callers. One lookup per movie, matching the read model.
func (s *movieService) mapMoviesToDTOs(ctx context.Context, userID string, movies []models.Movie) ([]dto.MovieResponse, error) {
	out := make([]dto.MovieResponse, 0, len(movies))
	for _, m := range movies {
		genres, err := s.genreRepo.GetByMovieID(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		resp := dto.FromMovieModel(m, genres)
		if userID != "" {
			saved, err := s.savedRepo.Exists(ctx, userID, m.ID)
			if err != nil {
				return nil, err
			}
			resp.IsSaved = saved
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *movieService) GetAllMovies(ctx context.Context, userID string) ([]dto.MovieResponse, error) {
	movies, err := s.movieRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapMoviesToDTOs(ctx, userID, movies)
}

func (s *movieService) GetLatestMovies(ctx context.Context, count int, userID string) ([]dto.MovieResponse, error) {
	// only anonymous responses are cacheable, is_saved is per user
	if userID == "" {
		if list, ok := s.movieCache.GetList(ctx, cache.LatestKey(count)); ok {
			return list, nil
		}
	}
	movies, err := s.movieRepo.GetLatest(ctx, count)
	if err != nil {
		return nil, err
	}
	list, err := s.mapMoviesToDTOs(ctx, userID, movies)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		s.movieCache.SetList(ctx, cache.LatestKey(count), list)
	}
	return list, nil
}

func (s *movieService) GetTopRatedMovies(ctx context.Context, count int, userID string) ([]dto.MovieResponse, error) {
	if userID == "" {
		if list, ok := s.movieCache.GetList(ctx, cache.TopRatedKey(count)); ok {
			return list, nil
		}
	}
	movies, err := s.movieRepo.GetTopRated(ctx, count)
	if err != nil {
		return nil, err
	}
	list, err := s.mapMoviesToDTOs(ctx, userID, movies)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		s.movieCache.SetList(ctx, cache.TopRatedKey(count), list)
	}
	return list, nil
}

func (s *movieService) SearchMovies(ctx context.Context, term string, userID string) ([]dto.MovieResponse, error) {
	movies, err := s.movieRepo.SearchByTitle(ctx, term)
	if err != nil {
		return nil, err
	}
	return s.mapMoviesToDTOs(ctx, userID, movies)
}

func (s *movieService) GetMoviesByGenreID(ctx context.Context, genreID int64, userID string) ([]dto.MovieResponse, error) {
	movies, err := s.movieRepo.GetByGenreID(ctx, genreID)
	if err != nil {
		return nil, err
	}
	return s.mapMoviesToDTOs(ctx, userID, movies)
}

func (s *movieService) GetMovieDetailsByID(ctx context.Context, id int64, userID string) (*dto.MovieResponse, error) {
	movie, err := s.movieRepo.GetByIDWithGenres(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	resp := dto.FromMovieModel(*movie, movie.Genres)
	if userID != "" {
		saved, err := s.savedRepo.Exists(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		resp.IsSaved = saved
	}
	return &resp, nil
}

// AddMovie uploads the mandatory poster first, then persists the movie with
// a server-stamped release date.
func (s *movieService) AddMovie(ctx context.Context, in dto.CreateMovieDTO, poster *multipart.FileHeader, req *http.Request) (*dto.MovieResponse, error) {
	if poster == nil || poster.Size == 0 {
		return nil, ErrPosterRequired
	}

	posterURL, err := s.images.UploadImage(poster, moviePosterFolder, req)
	if err != nil {
		return nil, err
	}

	movie := in.ToModel()
	movie.PosterURL = posterURL
	movie.ReleaseDate = time.Now()

	if err := s.movieRepo.Create(ctx, &movie); err != nil {
		return nil, err
	}
	if len(in.GenreIDs) > 0 {
		if err := s.movieRepo.ReplaceGenres(ctx, movie.ID, in.GenreIDs); err != nil {
			return nil, err
		}
	}

	s.movieCache.Invalidate(ctx)
	return s.GetMovieDetailsByID(ctx, movie.ID, "")
}

// UpdateMovie replaces the poster (the superseded file is removed) and
// overwrites every mutable field.
func (s *movieService) UpdateMovie(ctx context.Context, id int64, in dto.UpdateMovieDTO, poster *multipart.FileHeader, req *http.Request) (*dto.MovieResponse, error) {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if poster == nil || poster.Size == 0 {
		return nil, ErrPosterRequired
	}

	posterURL, err := s.images.UpdateImage(movie.PosterURL, poster, moviePosterFolder, req)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(movie)
	movie.PosterURL = posterURL

	if err := s.movieRepo.Update(ctx, movie); err != nil {
		return nil, err
	}
	if in.GenreIDs != nil {
		if err := s.movieRepo.ReplaceGenres(ctx, id, in.GenreIDs); err != nil {
			return nil, err
		}
	}

	s.movieCache.Invalidate(ctx)
	return s.GetMovieDetailsByID(ctx, id, "")
}

// DeleteMovie removes the poster file before the row; a failed file delete
// is logged and does not block the delete.
func (s *movieService) DeleteMovie(ctx context.Context, id int64) error {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}

	if err := s.images.DeleteImage(movie.PosterURL); err != nil {
		s.logger.Error("failed to delete poster file", "movie_id", id, "url", movie.PosterURL, "error", err)
	}
	if err := s.savedRepo.RemoveByMovie(ctx, id); err != nil {
		return err
	}
	if err := s.movieRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.movieCache.Invalidate(ctx)
	return nil
}
