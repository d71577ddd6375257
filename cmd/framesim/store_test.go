package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracklens/tracklens/domain/timeline"
)

func TestFrameStore_ListFiltersAndOrders(t *testing.T) {
	s := newFrameStore(10)
	s.Add("u-1", "2024-01-01T09:00:00.000000", 0, []byte("a"))
	s.Add("u-1", "2024-01-01T09:00:05.000000", 0, []byte("b"))
	s.Add("u-2", "2024-01-01T09:00:05.000000", 0, []byte("c"))
	s.Add("u-1", "2024-01-02T09:00:00.000000", 0, []byte("d"))

	asc := s.List("u-1", "2024-01-01", 0, false)
	require.Len(t, asc, 2)
	require.Equal(t, "2024-01-01T09:00:00.000000", asc[0].CapturedAt)

	desc := s.List("u-1", "2024-01-01", 1, true)
	require.Len(t, desc, 1)
	require.Equal(t, "2024-01-01T09:00:05.000000", desc[0].CapturedAt)
}

func TestFrameStore_EvictsOldest(t *testing.T) {
	s := newFrameStore(2)
	first := s.Add("u-1", "2024-01-01T09:00:00.000000", 0, []byte("a"))
	s.Add("u-1", "2024-01-01T09:00:01.000000", 0, []byte("b"))
	s.Add("u-1", "2024-01-01T09:00:02.000000", 0, []byte("c"))

	_, ok := s.Image(first)
	require.False(t, ok)
	require.Len(t, s.List("u-1", "2024-01-01", 0, false), 2)
}

func TestRouter_FramesAndImages(t *testing.T) {
	s := newFrameStore(10)
	id := s.Add("u-1", "2024-01-01T09:00:00.000000", 0, []byte{0x89, 'P', 'N', 'G'})
	router := setupRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/frames?user_id=u-1&date=2024-01-01&limit=10&order=asc", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var list []timeline.Frame
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, id, list[0].ID)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/frames/"+id+"/image", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/frames?date=2024-01-01", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
