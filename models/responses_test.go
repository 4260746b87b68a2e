package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestRatioMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Ratio(2.5))
	if err != nil {
		t.Fatalf("marshal finite ratio: %v", err)
	}
	if string(b) != "2.5" {
		t.Errorf("expected 2.5, got %s", b)
	}

	// +Inf (all-winning trade set) must serialize, as null.
	b, err = json.Marshal(Ratio(math.Inf(1)))
	if err != nil {
		t.Fatalf("marshal infinite ratio: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("expected null, got %s", b)
	}
}

func TestTradingStatsMarshalsWithInfiniteProfitFactor(t *testing.T) {
	stats := TradingStats{ProfitFactor: Ratio(math.Inf(1))}
	if _, err := json.Marshal(stats); err != nil {
		t.Fatalf("TradingStats with +Inf profit factor failed to marshal: %v", err)
	}
}
