package libcal

import (
	"reflect"
	"testing"

	"github.com/zzz403/Better-Robarts-Timetable/internal/storage/models"
)

func TestGroupByItemPartition(t *testing.T) {
	slots := []models.RawSlot{
		{ItemID: 10, Start: "s0"},
		{ItemID: 10, Start: "s1"},
		{ItemID: 20, Start: "s2"},
	}

	groups, order := GroupByItem(slots)

	if len(groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(groups))
	}
	if !reflect.DeepEqual(order, []int{10, 20}) {
		t.Errorf("order = %v, want [10 20]", order)
	}
	if len(groups[10]) != 2 || groups[10][0].Start != "s0" || groups[10][1].Start != "s1" {
		t.Errorf("group 10 wrong: %+v", groups[10])
	}
	if len(groups[20]) != 1 || groups[20][0].Start != "s2" {
		t.Errorf("group 20 wrong: %+v", groups[20])
	}

	// No slot dropped or duplicated.
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != len(slots) {
		t.Errorf("total grouped slots = %d, want %d", total, len(slots))
	}
}

func TestGroupByItemEmpty(t *testing.T) {
	groups, order := GroupByItem(nil)
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %v", groups)
	}
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}

func TestGroupByItemInterleaved(t *testing.T) {
	slots := []models.RawSlot{
		{ItemID: 20, Start: "s0"},
		{ItemID: 10, Start: "s1"},
		{ItemID: 20, Start: "s2"},
		{ItemID: 10, Start: "s3"},
	}

	groups, order := GroupByItem(slots)

	if !reflect.DeepEqual(order, []int{20, 10}) {
		t.Errorf("order = %v, want [20 10]", order)
	}
	if groups[20][0].Start != "s0" || groups[20][1].Start != "s2" {
		t.Errorf("input order not preserved within group 20: %+v", groups[20])
	}
	if groups[10][0].Start != "s1" || groups[10][1].Start != "s3" {
		t.Errorf("input order not preserved within group 10: %+v", groups[10])
	}
}
