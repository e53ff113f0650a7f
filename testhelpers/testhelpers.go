// Package testhelpers provides shared fixtures for exercising the quote
// pipeline end to end: sample scoping forms and stage data as YAML, plus
// small file-writing helpers for tests that load them from disk.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleFormYAML is a complete two-area scoping form. It validates
// cleanly against default rate tables and produces a priced quote, so
// tests can use it anywhere a realistic form file is needed.
const SampleFormYAML = `upid: S2P-42-2026
client_name: Meridian Development Group
project_name: Meridian HQ Renovation
site_address: 1400 Industry Way, Columbus OH

scan_tier_request: AUTO
bim_manager: AUTO

areas:
  - name: Main Building
    building_type: commercial
    square_footage: 25000
    scope: Full
    lod: "300"
    era: modern
    occupied: vacant
    room_density: 2
    structure: true
  - name: Annex
    building_type: warehouse
    square_footage: 8000
    scope: Ext Only
    lod: "200"
    era: 1940-1990
    occupied: vacant
    room_density: 1

travel:
  distance_miles: 120
  trip_days: 2
  crew_size: 2

georeferencing: true

custom_items:
  - description: Drone photography
    amount: 1200
    cost: 700
`

// SampleStageDataYAML records field bags for the first two production
// stages, enough to drive a scheduling to field_capture prefill.
const SampleStageDataYAML = `scheduling:
  assigned_scanner: R. Alvarez
  scheduled_date: "2026-03-02"
  crew_size: 2
field_capture:
  actual_scans: 193
  capture_notes: east stairwell rescanned
`

// WriteFile writes content under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// WriteSampleForm writes SampleFormYAML under dir and returns its path.
func WriteSampleForm(t *testing.T, dir string) string {
	t.Helper()
	return WriteFile(t, dir, "form.yaml", SampleFormYAML)
}

// WriteSampleStageData writes SampleStageDataYAML under dir and returns
// its path.
func WriteSampleStageData(t *testing.T, dir string) string {
	t.Helper()
	return WriteFile(t, dir, "stages.yaml", SampleStageDataYAML)
}
