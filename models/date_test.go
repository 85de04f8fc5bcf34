package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	if err != nil || d.String() != "2024-03-01" {
		t.Fatalf("ParseDate(date) = %v, %v", d, err)
	}
	d, err = ParseDate("2024-03-01T10:00:00+05:30")
	if err != nil || d.String() != "2024-03-01" {
		t.Fatalf("ParseDate(rfc3339) = %v, %v", d, err)
	}
	d, err = ParseDate("2024-01-01T00:00:00+05:30")
	if err != nil || !d.Equal(NewDate(2024, time.January, 1).Time) {
		t.Fatalf("ParseDate(positive offset) = %v, %v", d, err)
	}
	d, err = ParseDate("2024-01-01T23:30:00-08:00")
	if err != nil || d.String() != "2024-01-01" {
		t.Fatalf("ParseDate(negative offset) = %v, %v", d, err)
	}
	if _, err := ParseDate("01/03/2024"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("ParseDate(bad) error = %v", err)
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	if err := json.Unmarshal([]byte(`{"start":"2024-03-01","end":null}`), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !payload.Start.Equal(NewDate(2024, time.March, 1).Time) || !payload.End.IsZero() {
		t.Fatalf("decoded %+v", payload)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"start":"2024-03-01","end":null}` {
		t.Fatalf("Marshal() = %s", out)
	}
}

func TestDateJSONKeepsOffsetDay(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-01-01T00:00:00+05:30"`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `"2024-01-01"` {
		t.Fatalf("Marshal() = %s, want \"2024-01-01\"", out)
	}
}

func TestDateBSONIsDatetime(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"startDate": NewDate(2024, time.March, 1)})
	if err != nil {
		t.Fatalf("bson.Marshal() error = %v", err)
	}
	if got := bson.Raw(raw).Lookup("startDate").Type; got != bson.TypeDateTime {
		t.Fatalf("startDate stored as %v", got)
	}

	var back struct {
		StartDate Date `bson:"startDate"`
	}
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("bson.Unmarshal() error = %v", err)
	}
	if !back.StartDate.Equal(NewDate(2024, time.March, 1).Time) {
		t.Fatalf("decoded %v", back.StartDate)
	}
}
