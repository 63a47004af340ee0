package tableview

import (
	"testing"

	"StockPulse/internal/domain/models"
)

func rec(date, sentiment string, risk int) models.RecommendationRecord {
	return models.RecommendationRecord{Date: date, Symbol: "AAPL", Sentiment: sentiment, RiskScore: risk}
}

func dates(rows []models.RecommendationRecord) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Date
	}
	return out
}

func TestDefaultStateDateDescAll(t *testing.T) {
	e := NewEngine()
	field, dir, filter := e.State()
	if field != SortByDate || dir != Desc || filter != FilterAll {
		t.Fatalf("unexpected default state %s %s %s", field, dir, filter)
	}
}

func TestVisibleRowsDefaultSort(t *testing.T) {
	e := NewEngine()
	rows := e.VisibleRows([]models.RecommendationRecord{
		rec("2025-09-10", "bullish", 3),
		rec("2025-09-12", "bearish", 7),
		rec("2025-09-11", "bullish", 5),
	})
	got := dates(rows)
	want := []string{"2025-09-12", "2025-09-11", "2025-09-10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDateSortChronologicalNotLexicographic(t *testing.T) {
	e := NewEngine()
	e.ToggleSort(SortByDate) // date already active: desc -> asc

	rows := e.VisibleRows([]models.RecommendationRecord{
		rec("2025-09-12", "bullish", 1),
		rec("2025-09-1", "bullish", 1),
		rec("2025-09-2", "bullish", 1),
	})
	got := dates(rows)
	want := []string{"2025-09-1", "2025-09-2", "2025-09-12"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestToggleSortFlipsDirection(t *testing.T) {
	e := NewEngine()
	e.ToggleSort(SortByDate)
	if _, dir, _ := e.State(); dir != Asc {
		t.Fatalf("expected asc after first toggle, got %s", dir)
	}
	e.ToggleSort(SortByDate)
	if _, dir, _ := e.State(); dir != Desc {
		t.Fatalf("expected desc after second toggle, got %s", dir)
	}
}

func TestToggleSortDoubleReturnsToOriginal(t *testing.T) {
	for _, f := range []SortField{SortByDate, SortBySentiment, SortByRisk} {
		e := NewEngine()
		e.ToggleSort(f)
		_, first, _ := e.State()
		e.ToggleSort(f)
		_, second, _ := e.State()
		if first == second {
			t.Errorf("field %s: direction did not flip", f)
		}
		e.ToggleSort(f)
		_, third, _ := e.State()
		if third != first {
			t.Errorf("field %s: double toggle did not return to %s", f, first)
		}
	}
}

func TestToggleSortNewFieldResetsDesc(t *testing.T) {
	e := NewEngine()
	e.ToggleSort(SortByDate) // asc
	e.ToggleSort(SortByRisk)
	field, dir, _ := e.State()
	if field != SortByRisk || dir != Desc {
		t.Fatalf("expected riskScore desc, got %s %s", field, dir)
	}
}

func TestSetFilterDoesNotAlterSort(t *testing.T) {
	e := NewEngine()
	e.ToggleSort(SortBySentiment)
	e.SetFilter("bearish")
	field, dir, filter := e.State()
	if field != SortBySentiment || dir != Desc || filter != "bearish" {
		t.Fatalf("unexpected state %s %s %s", field, dir, filter)
	}
}

func TestFilterCaseInsensitiveExactMatch(t *testing.T) {
	records := []models.RecommendationRecord{
		rec("2025-09-10", "bullish", 3),
		rec("2025-09-11", "Bullish", 5),
		rec("2025-09-12", "bearish", 7),
	}

	for _, filter := range []string{"all", "bullish", "bearish", "neutral"} {
		e := NewEngine()
		e.SetFilter(filter)
		rows := e.VisibleRows(records)

		switch filter {
		case "all":
			if len(rows) != 3 {
				t.Errorf("all: expected 3 rows, got %d", len(rows))
			}
		case "bullish":
			if len(rows) != 2 {
				t.Errorf("bullish: expected 2 rows (case-insensitive), got %d", len(rows))
			}
		case "bearish":
			if len(rows) != 1 || rows[0].Date != "2025-09-12" {
				t.Errorf("bearish: expected the 09-12 record, got %v", dates(rows))
			}
		case "neutral":
			if len(rows) != 0 {
				t.Errorf("neutral: expected no rows, got %d", len(rows))
			}
		}
	}
}

func TestRiskSortNumeric(t *testing.T) {
	e := NewEngine()
	e.ToggleSort(SortByRisk) // desc
	rows := e.VisibleRows([]models.RecommendationRecord{
		rec("2025-09-10", "bullish", 2),
		rec("2025-09-11", "bullish", 10),
		rec("2025-09-12", "bullish", 7),
	})
	if rows[0].RiskScore != 10 || rows[2].RiskScore != 2 {
		t.Fatalf("unexpected risk order %v", rows)
	}
}

func TestStableTieBreak(t *testing.T) {
	e := NewEngine()
	e.ToggleSort(SortByRisk) // desc, all risks equal: input order preserved
	rows := e.VisibleRows([]models.RecommendationRecord{
		rec("2025-09-10", "bullish", 5),
		rec("2025-09-11", "bearish", 5),
		rec("2025-09-12", "neutral", 5),
	})
	got := dates(rows)
	want := []string{"2025-09-10", "2025-09-11", "2025-09-12"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie-break not stable: got %v, want %v", got, want)
		}
	}
}

func TestVisibleRowsDoesNotMutateInput(t *testing.T) {
	in := []models.RecommendationRecord{
		rec("2025-09-10", "bullish", 1),
		rec("2025-09-12", "bearish", 2),
	}
	e := NewEngine()
	_ = e.VisibleRows(in)
	if in[0].Date != "2025-09-10" || in[1].Date != "2025-09-12" {
		t.Fatal("input slice was reordered")
	}
}
