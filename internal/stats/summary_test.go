package stats

import (
	"testing"

	"neptune/internal/model"
)

func column(name string, values ...model.Scalar) model.Column {
	return model.Column{Name: name, Values: values}
}

func TestSummarize(t *testing.T) {
	col := column("fitness",
		model.Float(1),
		model.Absent(),
		model.Float(3),
		model.Float(2),
	)

	got, err := Summarize(col)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got.Name != "fitness" {
		t.Fatalf("unexpected name %q", got.Name)
	}
	if got.Min != 1 || got.Max != 3 || got.Mean != 2 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if got.Valid != 3 || got.Absent != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
}

func TestSummarizeNoValidValues(t *testing.T) {
	if _, err := Summarize(column("fitness", model.Absent(), model.Absent())); err == nil {
		t.Fatal("expected error for all-absent column")
	}
}

func TestValidValuesPreservesOrder(t *testing.T) {
	col := column("generation", model.Float(5), model.Absent(), model.Float(1))
	got := ValidValues(col)
	if len(got) != 2 || got[0] != 5 || got[1] != 1 {
		t.Fatalf("unexpected values: %v", got)
	}
}
