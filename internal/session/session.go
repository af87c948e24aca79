// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package session persists the set of named, currently-allocated
// rectangles of an atlas to a YAML file so a packing run can be
// resumed across CLI invocations. AllocIds are process-local (their
// generation counters reset every run), so sessions key entries by a
// caller-supplied name instead.
package session

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	yaml "go.yaml.in/yaml/v3"

	"github.com/texatlas/atlaspack/atlas"
)

// Entry is one named request recorded in a session file.
type Entry struct {
	Name   string    `yaml:"name"`
	Width  int32     `yaml:"width"`
	Height int32     `yaml:"height"`
	Rect   entryRect `yaml:"rect"`
}

type entryRect struct {
	MinX, MinY, MaxX, MaxY int32
}

// MarshalYAML flattens the rectangle to a single line for readability.
func (r entryRect) MarshalYAML() (any, error) {
	return []int32{r.MinX, r.MinY, r.MaxX, r.MaxY}, nil
}

func (r *entryRect) UnmarshalYAML(unmarshal func(any) error) error {
	var v [4]int32
	if err := unmarshal(&v); err != nil {
		return err
	}
	r.MinX, r.MinY, r.MaxX, r.MaxY = v[0], v[1], v[2], v[3]
	return nil
}

// File is the on-disk representation of a packing session.
type File struct {
	ID       string  `yaml:"id"`
	Width    int32   `yaml:"width"`
	Height   int32   `yaml:"height"`
	Checksum uint64  `yaml:"checksum"`
	Entries  []Entry `yaml:"entries"`
}

// FromAllocator builds a File capturing every currently allocated
// rectangle in al, keyed by the provided name lookup. names maps an
// AllocId to the label it was requested under; an id missing from
// names is recorded with an empty name.
func FromAllocator(al *atlas.AtlasAllocator, names map[atlas.AllocId]string) File {
	size := al.Size()
	f := File{ID: uuid.NewString(), Width: size.W, Height: size.H}

	al.ForEachAllocatedRectangle(func(id atlas.AllocId, rect atlas.Rectangle) {
		f.Entries = append(f.Entries, Entry{
			Name:   names[id],
			Width:  rect.Size().W,
			Height: rect.Size().H,
			Rect: entryRect{
				MinX: rect.Min.X, MinY: rect.Min.Y,
				MaxX: rect.Max.X, MaxY: rect.Max.Y,
			},
		})
	})

	sort.Slice(f.Entries, func(i, j int) bool { return f.Entries[i].Name < f.Entries[j].Name })
	f.Checksum = checksum(f.Entries)
	return f
}

// Save writes f to path as YAML.
func Save(path string, f File) error {
	bs, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return fmt.Errorf("session: write %s: %w", path, err)
	}
	return nil
}

// Load reads a session file and verifies its checksum, returning an
// error if an entry's name, width or height was edited out of band.
// The checksum does not cover the rect field or the file header.
func Load(path string) (File, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("session: read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(bs, &f); err != nil {
		return File{}, fmt.Errorf("session: unmarshal %s: %w", path, err)
	}
	if got := checksum(f.Entries); got != f.Checksum {
		return File{}, fmt.Errorf("session: %s checksum mismatch: file may have been edited out of band", path)
	}
	return f, nil
}

// Replay allocates every entry of f into al, in the order stored, and
// returns a name-to-AllocId map for the entries that fit.
func Replay(al *atlas.AtlasAllocator, f File) map[string]atlas.AllocId {
	result := make(map[string]atlas.AllocId, len(f.Entries))
	for _, e := range f.Entries {
		a, ok := al.Allocate(atlas.Size{W: e.Width, H: e.Height})
		if ok {
			result[e.Name] = a.Id
		}
	}
	return result
}

func checksum(entries []Entry) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, e := range entries {
		h.Write([]byte(e.Name))
		binary.LittleEndian.PutUint32(buf[0:4], uint32(e.Width))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(e.Height))
		h.Write(buf[:])
	}
	return h.Sum64()
}
