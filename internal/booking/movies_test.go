package booking

import (
	"context"
	"errors"

	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/stretchr/testify/mock"
)

func validMovie() domain.Movie {
	return domain.Movie{
		Title:       "Sample Movie Title",
		Genre:       "Action",
		Duration:    120,
		Rating:      8.7,
		ReleaseYear: 2025,
	}
}

func (s *ServiceTestSuite) TestCreateMovie() {
	s.Run("should assign id to new movie", func() {
		s.SetupTest()
		s.movieRepo.On("Create", mock.Anything, validMovie()).Return(int64(1), nil)

		got, err := s.service.CreateMovie(context.Background(), validMovie())

		s.Require().NoError(err)
		s.Equal(int64(1), got.ID)
		s.assertMocks()
	})

	s.Run("should reject duplicate title", func() {
		s.SetupTest()
		s.movieRepo.On("Create", mock.Anything, validMovie()).Return(int64(0), domain.ErrDuplicateMovie)

		_, err := s.service.CreateMovie(context.Background(), validMovie())

		s.Equal(domain.KindConflict, domain.KindOf(err))
		s.EqualError(err, "Movie already exists with title - Sample Movie Title")
	})

	s.Run("should reject negative duration", func() {
		s.SetupTest()
		movie := validMovie()
		movie.Duration = -1

		_, err := s.service.CreateMovie(context.Background(), movie)

		var validationErr *domain.ValidationError
		s.Require().True(errors.As(err, &validationErr))
		s.Equal([]domain.FieldIssue{{Field: "duration", Issue: "must not be less than 0"}}, validationErr.Issues)
		s.movieRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	})
}

func (s *ServiceTestSuite) TestUpdateMovie() {
	s.Run("should replace every field", func() {
		s.SetupTest()
		renamed := validMovie()
		renamed.Title = "Renamed"

		s.movieRepo.On("GetByTitle", mock.Anything, "Sample Movie Title").Return(&domain.Movie{ID: 9}, nil)
		s.movieRepo.On("UpdateByTitle", mock.Anything, "Sample Movie Title", mock.Anything).Return(int64(9), nil)

		got, err := s.service.UpdateMovie(context.Background(), "Sample Movie Title", renamed)

		s.Require().NoError(err)
		s.Equal(int64(9), got.ID)
		s.Equal("Renamed", got.Title)
		s.assertMocks()
	})

	s.Run("should fail for unknown title", func() {
		s.SetupTest()
		s.movieRepo.On("GetByTitle", mock.Anything, "Unknown").Return(nil, domain.ErrRecordNotFound)

		_, err := s.service.UpdateMovie(context.Background(), "Unknown", validMovie())

		s.Equal(domain.KindNotFound, domain.KindOf(err))
		s.EqualError(err, "Movie not found with title - Unknown")
	})

	s.Run("should reject renaming onto an existing title", func() {
		s.SetupTest()
		s.movieRepo.On("GetByTitle", mock.Anything, "Other").Return(&domain.Movie{ID: 2}, nil)
		s.movieRepo.On("UpdateByTitle", mock.Anything, "Other", mock.Anything).Return(int64(0), domain.ErrDuplicateMovie)

		_, err := s.service.UpdateMovie(context.Background(), "Other", validMovie())

		s.Equal(domain.KindConflict, domain.KindOf(err))
		s.ErrorIs(err, domain.ErrDuplicateMovie)
	})
}

func (s *ServiceTestSuite) TestDeleteMovie() {
	s.SetupTest()
	s.movieRepo.On("DeleteByTitle", mock.Anything, "Unknown").Return(domain.ErrRecordNotFound)

	err := s.service.DeleteMovie(context.Background(), "Unknown")

	s.Equal(domain.KindNotFound, domain.KindOf(err))
}
