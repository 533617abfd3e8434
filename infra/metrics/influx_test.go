package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/skysift/skysift/core/metrics"
	"github.com/skysift/skysift/core/model"
	"github.com/skysift/skysift/core/timeofday"
)

func TestInfluxSink_RecordNormalized(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	at := time.Date(2022, time.January, 1, 9, 30, 0, 0, time.UTC)
	dep := model.NormalizedDeparture{
		Carrier:     "UA",
		Origin:      "EWR",
		Destination: "IAH",
		TimeOfDay:   timeofday.TimeOfDay{Hour: 9, Minute: 30},
		DepartsAt:   at,
		DelayMin:    2,
		DistanceKM:  2279,
	}

	if err := sink.RecordNormalized(coremetrics.NormalizedEvent{Source: "csv", Departure: dep, Time: at}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("departure").
		AddTag("source", "csv").
		AddTag("carrier", "UA").
		AddTag("origin", "EWR").
		AddTag("dest", "IAH").
		AddField("delay_min", 2.0).
		AddField("distance_km", 2279.0).
		AddField("minutes_of_day", 570).
		SetTime(at)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body:\n got %s\nwant %s", body, expected)
	}
}

func TestInfluxSink_RecordRejected(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.RejectedEvent{Source: "mqtt", Token: "2460", Kind: "range", Time: now}
	if err := sink.RecordRejected(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("rejected_record").
		AddTag("source", "mqtt").
		AddTag("kind", "range").
		AddField("count", 1).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	cfg := coremetrics.Config{
		InfluxURL:    srv.URL + "/api/v2/write",
		InfluxToken:  "tok",
		InfluxOrg:    "org",
		InfluxBucket: "bucket",
	}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
