package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"bookingId": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE movies, showtimes, tickets RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func insertTestMovie(t testing.TB, db *pgxpool.Pool, title string) int64 {
	var id int64

	err := db.QueryRow(context.Background(),
		`INSERT INTO movies (title, genre, duration, rating, release_year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		title, TestMovieGenre, TestMovieDuration, TestMovieRating, TestMovieReleaseYear,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertTestShowtime(t testing.TB, db *pgxpool.Pool, movieID int64, theater string, start, end time.Time) int64 {
	var id int64

	err := db.QueryRow(context.Background(),
		`INSERT INTO showtimes (movie_id, theater, start_time, end_time, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		movieID, theater, start, end, TestPrice,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertTestTicket(t testing.TB, db *pgxpool.Pool, showtimeID int64, seat int) {
	_, err := db.Exec(context.Background(),
		`INSERT INTO tickets (booking_id, showtime_id, seat_number, user_id)
		VALUES (gen_random_uuid(), $1, $2, $3)`,
		showtimeID, seat, TestUserId,
	)
	require.NoError(t, err)
}

func countRows(t testing.TB, db *pgxpool.Pool, table string) int {
	var n int

	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)

	return n
}
