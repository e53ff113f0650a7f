package rates

import (
	"math"
	"testing"
)

func TestDefaultSnapshotBuilds(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Default() panicked: %v", r)
		}
	}()
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
}

func TestDefaultRateDerivation(t *testing.T) {
	tables := Default()

	tests := []struct {
		name   string
		lookup func() (float64, bool)
		expect float64
	}{
		{
			"arch commercial mid band lod300",
			func() (float64, bool) { return tables.ArchRate("commercial", "15k-50k", "300") },
			0.14,
		},
		{
			"arch small band carries the 1.25 factor",
			func() (float64, bool) { return tables.ArchRate("commercial", "0-5k", "300") },
			0.175,
		},
		{
			"structure addon is 55% of arch",
			func() (float64, bool) { return tables.AddOnRate("structure", "commercial", "15k-50k", "300") },
			0.077,
		},
		{
			"grade addon is 30% of arch",
			func() (float64, bool) { return tables.AddOnRate("grade", "warehouse", "15k-50k", "200") },
			0.015,
		},
		{
			"structure markup mid band",
			func() (float64, bool) { return tables.BandMarkup("structure", "15k-50k") },
			1.35,
		},
		{
			"cad full package mid band",
			func() (float64, bool) { return tables.CADRate("15k-50k", "full") },
			0.042,
		},
		{
			"cad markup full package mid band",
			func() (float64, bool) { return tables.CADMarkup("15k-50k", "full") },
			1.42,
		},
		{
			"x7 scan baseline mid band",
			func() (float64, bool) { return tables.ScanBaseline("15k-50k") },
			0.085,
		},
		{
			"slam baseline first mega band",
			func() (float64, bool) { return tables.SLAMBaseline("100k-250k") },
			0.035,
		},
		{
			"ext only scope discount",
			func() (float64, bool) { return tables.ScopeDiscount("Ext Only") },
			0.85,
		},
		{
			"lead scanner factor",
			func() (float64, bool) { return tables.SeniorityFactor("lead") },
			0.85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.lookup()
			if !ok {
				t.Fatal("lookup missed, want a seeded row")
			}
			if math.Abs(got-tt.expect) > 0.0001 {
				t.Errorf("got %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestDefaultSLAMEligibility(t *testing.T) {
	tables := Default()

	eligible := []string{"commercial", "industrial", "warehouse", "education", "civic"}
	for _, bt := range eligible {
		if !tables.SLAMEligible(bt) {
			t.Errorf("%s should be SLAM eligible", bt)
		}
	}
	ineligible := []string{"residential", "healthcare", "hospitality"}
	for _, bt := range ineligible {
		if tables.SLAMEligible(bt) {
			t.Errorf("%s should not be SLAM eligible", bt)
		}
	}
}

func TestDefaultCoversAllBandsAndLODs(t *testing.T) {
	tables := Default()

	lods := []string{"200", "300", "350"}
	for _, band := range tables.Bands() {
		for _, lod := range lods {
			if _, ok := tables.ArchRate("commercial", band.Key, lod); !ok {
				t.Errorf("missing arch rate for commercial/%s/%s", band.Key, lod)
			}
			for _, discipline := range []string{"structure", "mepf", "grade"} {
				if _, ok := tables.AddOnRate(discipline, "commercial", band.Key, lod); !ok {
					t.Errorf("missing %s rate for commercial/%s/%s", discipline, band.Key, lod)
				}
			}
		}
		for _, pkg := range []string{"full", "arch-only", "shell"} {
			if _, ok := tables.CADRate(band.Key, pkg); !ok {
				t.Errorf("missing cad rate for %s/%s", band.Key, pkg)
			}
			if _, ok := tables.CADMarkup(band.Key, pkg); !ok {
				t.Errorf("missing cad markup for %s/%s", band.Key, pkg)
			}
		}
		if _, ok := tables.ScanBaseline(band.Key); !ok {
			t.Errorf("missing scan baseline for %s", band.Key)
		}
	}

	for _, mega := range tables.MegaBands() {
		if _, ok := tables.SLAMBaseline(mega.Key); !ok {
			t.Errorf("missing slam baseline for %s", mega.Key)
		}
	}
}
