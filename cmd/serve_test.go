package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nominatim-cli/pkg/nominatim"
)

// fakeClient is a canned-response nominatim.Client for handler tests.
type fakeClient struct {
	searchPlaces []nominatim.Place
	searchErr    error
	reversePlace *nominatim.Place
	reverseErr   error
	lastSearch   *nominatim.SearchQuery
}

func (f *fakeClient) Search(_ context.Context, q *nominatim.SearchQuery) ([]nominatim.Place, error) {
	f.lastSearch = q
	return f.searchPlaces, f.searchErr
}

func (f *fakeClient) Reverse(_ context.Context, _ *nominatim.ReverseQuery) (*nominatim.Place, error) {
	return f.reversePlace, f.reverseErr
}

func (f *fakeClient) Lookup(_ context.Context, _ *nominatim.LookupQuery) ([]nominatim.Place, error) {
	return nil, nil
}

func (f *fakeClient) Details(_ context.Context, _ *nominatim.DetailsQuery) (*nominatim.PlaceDetails, error) {
	return nil, nil
}

func (f *fakeClient) Status(_ context.Context) (*nominatim.ServerStatus, error) {
	return &nominatim.ServerStatus{Message: "OK"}, nil
}

func (f *fakeClient) Raw(_ context.Context, _ nominatim.Query, _ string) ([]byte, error) {
	return nil, nil
}

func TestServeMux_Health(t *testing.T) {
	mux := newServeMux(&fakeClient{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeMux_Search(t *testing.T) {
	fake := &fakeClient{
		searchPlaces: []nominatim.Place{{PlaceID: 1, DisplayName: "Paris, France", Lat: "48.85", Lon: "2.35"}},
	}
	mux := newServeMux(fake)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=Paris&limit=5&countrycodes=fr", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var places []nominatim.Place
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &places))
	require.Len(t, places, 1)
	assert.Equal(t, "Paris, France", places[0].DisplayName)

	require.NotNil(t, fake.lastSearch)
	params := fake.lastSearch.Params()
	assert.Equal(t, "Paris", params["q"])
	assert.Equal(t, "5", params["limit"])
	assert.Equal(t, "fr", params["countrycodes"])
}

func TestServeMux_Search_MissingQuery(t *testing.T) {
	mux := newServeMux(&fakeClient{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeMux_Search_BadLimit(t *testing.T) {
	mux := newServeMux(&fakeClient{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=Paris&limit=nope", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeMux_Search_BadCountryCode(t *testing.T) {
	mux := newServeMux(&fakeClient{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=Paris&countrycodes=france", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeMux_Reverse(t *testing.T) {
	mux := newServeMux(&fakeClient{
		reversePlace: &nominatim.Place{PlaceID: 2, DisplayName: "Tour Eiffel", Lat: "48.85", Lon: "2.29"},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reverse?lat=48.8584&lon=2.2945", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var place nominatim.Place
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &place))
	assert.Equal(t, "Tour Eiffel", place.DisplayName)
}

func TestServeMux_Reverse_MissingCoordinates(t *testing.T) {
	mux := newServeMux(&fakeClient{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reverse?lat=48.8584", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShutdownServer_DrainsInFlightRequests(t *testing.T) {
	started := make(chan struct{})
	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			close(started)
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}),
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)

	statusCh := make(chan int, 1)
	go func() {
		resp, reqErr := http.Get("http://" + ln.Addr().String() + "/")
		if reqErr != nil {
			statusCh <- 0
			return
		}
		resp.Body.Close()
		statusCh <- resp.StatusCode
	}()

	// Shut down while the request is in flight; the drain must let it finish.
	<-started
	shutdownServer(srv, 5*time.Second)
	assert.Equal(t, http.StatusOK, <-statusCh)
}

func TestServeMux_Reverse_NoResult(t *testing.T) {
	mux := newServeMux(&fakeClient{reverseErr: nominatim.ErrNoResult})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reverse?lat=0&lon=0", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
