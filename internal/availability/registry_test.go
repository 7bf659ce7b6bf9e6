package availability

import (
	"strings"
	"testing"
)

const rosterCSV = `space_id,room_name,capacity_found_at,gid,url
30514,Group Study Room 101,6,7314,https://example.org/space/30514
30520,Group Study Room 102,8,7466,https://example.org/space/30520
`

func TestParseRegistry(t *testing.T) {
	registry, err := ParseRegistry(strings.NewReader(rosterCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if registry.Len() != 2 {
		t.Fatalf("len = %d, want 2", registry.Len())
	}

	room, ok := registry.Lookup(30514)
	if !ok {
		t.Fatal("room 30514 not found")
	}
	if room.Name != "Group Study Room 101" || room.Capacity != 6 || room.GroupID != 7314 {
		t.Errorf("room fields wrong: %+v", room)
	}
	if room.URL != "https://example.org/space/30514" {
		t.Errorf("url = %q", room.URL)
	}

	if _, ok := registry.Lookup(99999); ok {
		t.Error("lookup of unknown room should miss")
	}
}

func TestParseRegistryColumnOrderIndependent(t *testing.T) {
	reordered := `gid,url,space_id,room_name,capacity_found_at
7314,u,30514,Room A,4
`
	registry, err := ParseRegistry(strings.NewReader(reordered))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	room, ok := registry.Lookup(30514)
	if !ok || room.GroupID != 7314 || room.Capacity != 4 {
		t.Errorf("room = %+v, ok = %v", room, ok)
	}
}

func TestParseRegistryMissingColumn(t *testing.T) {
	if _, err := ParseRegistry(strings.NewReader("space_id,room_name\n1,x\n")); err == nil {
		t.Error("expected error for roster without gid column")
	}
}

func TestParseRegistryBadSpaceID(t *testing.T) {
	bad := "space_id,room_name,gid\nnot-a-number,x,1\n"
	if _, err := ParseRegistry(strings.NewReader(bad)); err == nil {
		t.Error("expected error for non-numeric space_id")
	}
}
