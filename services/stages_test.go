package services

import "testing"

func TestNextStage(t *testing.T) {
	tests := []struct {
		name    string
		stage   Stage
		want    Stage
		wantErr bool
	}{
		{"scheduling to field capture", StageScheduling, StageFieldCapture, false},
		{"field capture to registration", StageFieldCapture, StageRegistration, false},
		{"registration to modeling", StageRegistration, StageModeling, false},
		{"modeling to qa", StageModeling, StageQA, false},
		{"qa to delivery", StageQA, StageDelivery, false},
		{"delivery is final", StageDelivery, "", true},
		{"unknown stage", Stage("billing"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStage(tt.stage)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NextStage(%q) error = nil, want error", tt.stage)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextStage(%q) error = %v", tt.stage, err)
			}
			if got != tt.want {
				t.Errorf("NextStage(%q) = %q, want %q", tt.stage, got, tt.want)
			}
		})
	}
}

func TestValidStage(t *testing.T) {
	for _, s := range StageOrder {
		if !ValidStage(s) {
			t.Errorf("ValidStage(%q) = false, want true", s)
		}
	}
	for _, s := range []Stage{"", "billing", "Scheduling"} {
		if ValidStage(s) {
			t.Errorf("ValidStage(%q) = true, want false", s)
		}
	}
}

func TestStageDataPriorStages(t *testing.T) {
	data := StageData{
		StageScheduling:   {"upid": "S2P-42-2026"},
		StageRegistration: {"rms_error": 0.004},
		StageQA:           {"signoff": true},
	}

	tests := []struct {
		name  string
		limit Stage
		want  []Stage
	}{
		{"newest first up to limit", StageQA, []Stage{StageQA, StageRegistration, StageScheduling}},
		{"skips empty stages", StageModeling, []Stage{StageRegistration, StageScheduling}},
		{"limit itself empty", StageFieldCapture, []Stage{StageScheduling}},
		{"earliest stage only", StageScheduling, []Stage{StageScheduling}},
		{"unknown limit", Stage("billing"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.priorStages(tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("priorStages(%q) = %v, want %v", tt.limit, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("priorStages(%q)[%d] = %q, want %q", tt.limit, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStageDataPriorStagesIgnoresEmptyMaps(t *testing.T) {
	data := StageData{
		StageScheduling:   {},
		StageFieldCapture: {"capture_date": "2026-03-02"},
	}

	got := data.priorStages(StageFieldCapture)
	if len(got) != 1 || got[0] != StageFieldCapture {
		t.Errorf("priorStages() = %v, want [field_capture] (empty maps skipped)", got)
	}
}
