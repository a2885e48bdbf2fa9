package integration_test

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TestMovieTitle       = "Test Movie"
	TestMovieGenre       = "Action"
	TestMovieDuration    = 120.0
	TestMovieRating      = 8.7
	TestMovieReleaseYear = 2025

	TestTheater = "Sample Theater"

	TestUserId = "84438967-f68f-4fa0-b620-0f08217e76af"

	eventTopicPrefix = "popcorn"
)

var (
	TestStartTime = time.Date(2095, 2, 14, 11, 47, 46, 0, time.UTC)
	TestEndTime   = TestStartTime.Add(2 * time.Hour)
	TestPrice     = decimal.RequireFromString("50.2")
)
