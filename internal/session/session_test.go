// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package session

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/texatlas/atlaspack/atlas"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	al := atlas.New(atlas.Size{W: 200, H: 200})
	names := map[atlas.AllocId]string{}

	for _, req := range []struct {
		name string
		w, h int32
	}{
		{"icon-a", 32, 32},
		{"icon-b", 64, 48},
		{"banner", 150, 40},
	} {
		a, ok := al.Allocate(atlas.Size{W: req.w, H: req.h})
		if !ok {
			t.Fatalf("allocate %s: unexpected failure", req.name)
		}
		names[a.Id] = req.name
	}

	want := FromAllocator(al, names)

	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-tripped session differs (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsTamperedChecksum(t *testing.T) {
	al := atlas.New(atlas.Size{W: 100, H: 100})
	a, ok := al.Allocate(atlas.Size{W: 10, H: 10})
	if !ok {
		t.Fatal("allocate: unexpected failure")
	}
	f := FromAllocator(al, map[atlas.AllocId]string{a.Id: "sprite"})
	f.Checksum++ // simulate an out-of-band edit

	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := Save(path, f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected checksum mismatch error, got nil")
	}
}

func TestReplayRestoresNamedAllocations(t *testing.T) {
	al := atlas.New(atlas.Size{W: 100, H: 100})
	names := map[atlas.AllocId]string{}
	a, _ := al.Allocate(atlas.Size{W: 20, H: 20})
	names[a.Id] = "sprite"
	f := FromAllocator(al, names)

	al2 := atlas.New(atlas.Size{W: 100, H: 100})
	got := Replay(al2, f)

	if _, ok := got["sprite"]; !ok {
		t.Fatalf("Replay: expected entry %q to be restored, got %v", "sprite", got)
	}
}
