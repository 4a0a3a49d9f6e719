package movies

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"inkreel/internal/config"
	"inkreel/internal/database"
	"inkreel/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

// fakeCatalogue imitates the metadata API with a fixed two-movie catalogue.
func fakeCatalogue(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":27205,"title":"Inception","release_date":"2010-07-15"},
			{"id":64956,"title":"Inception: The Cobol Job","release_date":"2010-12-07"}
		]}`))
	})
	mux.HandleFunc("/movie/27205", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"title":"Inception",
			"release_date":"2010-07-15",
			"overview":"A thief who steals corporate secrets.",
			"vote_average":8.4,
			"tagline":"Your mind is the scene of the crime.",
			"poster_path":"/poster.jpg"
		}`))
	})
	mux.HandleFunc("/movie/500500", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.ConnectSQLite()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Env:              "test",
		TMDBBaseURL:      fakeCatalogue(t).URL,
		TMDBAPIKey:       "test-key",
		TMDBImageBaseURL: "https://image.tmdb.org/t/p/w500",
	}

	srv := NewServer(cfg, db, rdb)
	return &testServer{app: srv.App(), db: db}
}

func (ts *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func seedMovie(t *testing.T, db *gorm.DB, title string, rating float64) *models.Movie {
	t.Helper()
	movie := &models.Movie{Title: title, Year: 2000, Description: "d", Rating: rating, Review: "r"}
	require.NoError(t, db.Create(movie).Error)
	return movie
}

func TestHome_RanksCollection(t *testing.T) {
	ts := newTestServer(t)
	seedMovie(t, ts.db, "Low", 2.0)
	seedMovie(t, ts.db, "High", 9.0)
	seedMovie(t, ts.db, "Mid", 5.0)

	resp := ts.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)

	// Best-rated first, and ranks stick in the database.
	assert.Less(t, strings.Index(page, "High"), strings.Index(page, "Mid"))
	assert.Less(t, strings.Index(page, "Mid"), strings.Index(page, "Low"))

	var high models.Movie
	require.NoError(t, ts.db.Where("title = ?", "High").First(&high).Error)
	assert.Equal(t, 1, high.Ranking)

	var low models.Movie
	require.NoError(t, ts.db.Where("title = ?", "Low").First(&low).Error)
	assert.Equal(t, 3, low.Ranking)
}

func TestEdit(t *testing.T) {
	t.Run("form renders", func(t *testing.T) {
		ts := newTestServer(t)
		movie := seedMovie(t, ts.db, "Editable", 5.0)

		resp := ts.get(t, "/edit?id=1")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body(t, resp), movie.Title)
	})

	t.Run("updates rating and review", func(t *testing.T) {
		ts := newTestServer(t)
		movie := seedMovie(t, ts.db, "Editable", 5.0)

		resp := ts.postForm(t, "/edit?id=1", url.Values{
			"rating": {"8.5"},
			"review": {"Holds up"},
		})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

		var got models.Movie
		require.NoError(t, ts.db.First(&got, movie.ID).Error)
		assert.Equal(t, 8.5, got.Rating)
		assert.Equal(t, "Holds up", got.Review)
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		ts := newTestServer(t)
		seedMovie(t, ts.db, "Editable", 5.0)

		resp := ts.postForm(t, "/edit?id=1", url.Values{
			"rating": {"11"},
			"review": {"too good"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing movie is a 404", func(t *testing.T) {
		ts := newTestServer(t)
		resp := ts.get(t, "/edit?id=999")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		ts := newTestServer(t)
		resp := ts.get(t, "/edit?id=abc")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDelete(t *testing.T) {
	ts := newTestServer(t)
	movie := seedMovie(t, ts.db, "Doomed", 5.0)

	resp := ts.get(t, "/delete?id=1")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var count int64
	require.NoError(t, ts.db.Model(&models.Movie{}).Where("id = ?", movie.ID).Count(&count).Error)
	assert.Zero(t, count)

	resp = ts.get(t, "/delete?id=1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdd_SearchPhase(t *testing.T) {
	t.Run("lists candidates without persisting", func(t *testing.T) {
		ts := newTestServer(t)

		resp := ts.postForm(t, "/add", url.Values{"title": {"Inception"}})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		page := body(t, resp)
		assert.Contains(t, page, "Inception")
		assert.Contains(t, page, "Inception: The Cobol Job")
		assert.Contains(t, page, "/find?id=27205")

		var count int64
		require.NoError(t, ts.db.Model(&models.Movie{}).Count(&count).Error)
		assert.Zero(t, count, "searching must not persist anything")
	})

	t.Run("blank title re-renders the form", func(t *testing.T) {
		ts := newTestServer(t)
		resp := ts.postForm(t, "/add", url.Values{"title": {"   "}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body(t, resp), "Movie title is required")
	})
}

func TestFind_AddsAndRedirectsToRating(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/find?id=27205")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var movie models.Movie
	require.NoError(t, ts.db.Where("title = ?", "Inception").First(&movie).Error)
	assert.Equal(t, 2010, movie.Year)
	assert.Equal(t, 8.4, movie.Rating)
	assert.Equal(t, "Your mind is the scene of the crime.", movie.Review)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", movie.ImageURL)

	assert.Contains(t, resp.Header.Get("Location"), "/edit?id=")
}

func TestFind_UpstreamFailure(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/find?id=500500")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var count int64
	require.NoError(t, ts.db.Model(&models.Movie{}).Count(&count).Error)
	assert.Zero(t, count, "a failed lookup must not persist anything")
}
