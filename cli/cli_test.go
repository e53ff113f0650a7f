package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scanquote/services"
	"scanquote/testhelpers"
)

// blockedFormYAML prices a tiny area alongside a near-cost pass-through
// item, dragging the blended margin below the blocking threshold.
const blockedFormYAML = `upid: S2P-9-2026
client_name: Test Client
areas:
  - name: Kiosk
    building_type: commercial
    square_footage: 500
    lod: "200"
    room_density: 1
custom_items:
  - description: Pass-through hardware
    amount: 10000
    cost: 9800
`

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRunQuote_Table(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteSampleForm(t, t.TempDir())
	cmd, buf := newTestCmd()

	if err := runQuote(cmd, form, false); err != nil {
		t.Fatalf("runQuote failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Quote S2P-42-2026", "Tier X7", "Main Building", "Annex", "Margin floor", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("quote output missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestRunQuote_JSON(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteSampleForm(t, t.TempDir())
	cmd, buf := newTestCmd()

	if err := runQuote(cmd, form, true); err != nil {
		t.Fatalf("runQuote failed: %v", err)
	}

	var quote services.QuoteResult
	if err := json.Unmarshal(buf.Bytes(), &quote); err != nil {
		t.Fatalf("quote output is not valid JSON: %v", err)
	}
	if quote.UPID != "S2P-42-2026" {
		t.Errorf("UPID = %q, want %q", quote.UPID, "S2P-42-2026")
	}
	if quote.Tier != "X7" {
		t.Errorf("Tier = %q, want X7", quote.Tier)
	}
	if len(quote.Areas) != 2 {
		t.Errorf("len(Areas) = %d, want 2", len(quote.Areas))
	}
	if quote.FloorAdjustment <= 0 {
		t.Errorf("FloorAdjustment = %v, want > 0", quote.FloorAdjustment)
	}
	if math.Abs(quote.Total-18693.95) > 0.01 {
		t.Errorf("Total = %v, want 18693.95", quote.Total)
	}
	if len(quote.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", quote.Warnings)
	}
}

func TestRunQuote_InvalidForm(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteFile(t, t.TempDir(), "form.yaml", `upid: S2P-1-2026
areas:
  - name: Lab
    building_type: laboratory
    square_footage: 1000
`)
	cmd, _ := newTestCmd()

	err := runQuote(cmd, form, false)
	if err == nil {
		t.Fatal("runQuote expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid scoping form") {
		t.Errorf("error = %v, want validation failure", err)
	}
	if !strings.Contains(err.Error(), "client_name") || !strings.Contains(err.Error(), "building_type") {
		t.Errorf("error should list every field failure, got: %v", err)
	}
}

func TestRunQuote_MissingFile(t *testing.T) {
	logger = zap.NewNop()
	cmd, _ := newTestCmd()

	if err := runQuote(cmd, t.TempDir()+"/absent.yaml", false); err == nil {
		t.Fatal("runQuote expected error for missing form, got nil")
	}
}

func TestRunShells_Unpriced(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteSampleForm(t, t.TempDir())
	cmd, buf := newTestCmd()

	if err := runShells(cmd, form, false, true); err != nil {
		t.Fatalf("runShells failed: %v", err)
	}

	var shells []services.LineItemShell
	if err := json.Unmarshal(buf.Bytes(), &shells); err != nil {
		t.Fatalf("shells output is not valid JSON: %v", err)
	}
	if len(shells) != 6 {
		t.Fatalf("len(shells) = %d, want 6", len(shells))
	}
	if shells[0].ID != "L-1" || shells[0].Discipline != services.DisciplineArch {
		t.Errorf("shells[0] = %s/%s, want L-1/arch", shells[0].ID, shells[0].Discipline)
	}
	if shells[0].ClientPrice != nil {
		t.Errorf("unpriced arch shell has ClientPrice %v", *shells[0].ClientPrice)
	}
	last := shells[len(shells)-1]
	if last.Discipline != services.DisciplineCustom || last.ClientPrice == nil || *last.ClientPrice != 1200 {
		t.Errorf("custom shell = %+v, want client price 1200", last)
	}
}

func TestRunShells_Priced(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteSampleForm(t, t.TempDir())
	cmd, buf := newTestCmd()

	if err := runShells(cmd, form, true, true); err != nil {
		t.Fatalf("runShells failed: %v", err)
	}

	var shells []services.LineItemShell
	if err := json.Unmarshal(buf.Bytes(), &shells); err != nil {
		t.Fatalf("shells output is not valid JSON: %v", err)
	}
	if len(shells) != 7 {
		t.Fatalf("len(shells) = %d, want 7 including the floor adjustment", len(shells))
	}
	for _, shell := range shells {
		if shell.UpteamCost == nil || shell.ClientPrice == nil {
			t.Errorf("priced shell %s (%s) still has nil amounts", shell.ID, shell.Discipline)
		}
	}
	if last := shells[len(shells)-1]; last.Discipline != services.DisciplineFloorAdjust {
		t.Errorf("last discipline = %s, want floor_adjustment", last.Discipline)
	}
}

func TestRunTotals_JSON(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteSampleForm(t, t.TempDir())
	cmd, buf := newTestCmd()

	if err := runTotals(cmd, form, false, true); err != nil {
		t.Fatalf("runTotals failed: %v", err)
	}

	var totals services.QuoteTotals
	if err := json.Unmarshal(buf.Bytes(), &totals); err != nil {
		t.Fatalf("totals output is not valid JSON: %v", err)
	}
	if totals.IntegrityStatus != services.IntegrityPassed {
		t.Errorf("IntegrityStatus = %q, want passed", totals.IntegrityStatus)
	}
	if math.Abs(totals.TotalClientPrice-19893.95) > 0.01 {
		t.Errorf("TotalClientPrice = %v, want 19893.95", totals.TotalClientPrice)
	}
	if math.Abs(totals.GrossMarginPercent-51.0) > 0.1 {
		t.Errorf("GrossMarginPercent = %v, want about 51.0", totals.GrossMarginPercent)
	}
	if len(totals.IntegrityFlags) != 0 {
		t.Errorf("IntegrityFlags = %v, want none", totals.IntegrityFlags)
	}
}

func TestRunTotals_EnforceCleanQuote(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteSampleForm(t, t.TempDir())
	cmd, _ := newTestCmd()

	if err := runTotals(cmd, form, true, false); err != nil {
		t.Fatalf("runTotals --enforce failed on a passing quote: %v", err)
	}
}

func TestRunTotals_EnforceBlockedQuote(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteFile(t, t.TempDir(), "form.yaml", blockedFormYAML)
	cmd, buf := newTestCmd()

	err := runTotals(cmd, form, true, false)
	if err == nil {
		t.Fatal("runTotals --enforce expected error for blocked quote, got nil")
	}
	if !errors.Is(err, errQuoteBlocked) {
		t.Errorf("error = %v, want errQuoteBlocked", err)
	}
	if !strings.Contains(buf.String(), services.IntegrityBlocked) {
		t.Errorf("totals output should still report the verdict, got:\n%s", buf.String())
	}
}

func TestRunCascade(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()
	form := testhelpers.WriteSampleForm(t, dir)
	stages := testhelpers.WriteSampleStageData(t, dir)
	cmd, buf := newTestCmd()

	if err := runCascade(cmd, form, "scheduling", "field_capture", stages, true); err != nil {
		t.Fatalf("runCascade failed: %v", err)
	}

	var out services.CascadeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("cascade output is not valid JSON: %v", err)
	}
	if out.From != services.StageScheduling || out.To != services.StageFieldCapture {
		t.Errorf("transition = %s -> %s, want scheduling -> field_capture", out.From, out.To)
	}
	if len(out.Results) != 11 {
		t.Errorf("len(Results) = %d, want 11", len(out.Results))
	}
	if got := out.Data["upid"]; got != "S2P-42-2026" {
		t.Errorf("upid = %v, want S2P-42-2026", got)
	}
	if got := out.Data["assigned_scanner"]; got != "R. Alvarez" {
		t.Errorf("assigned_scanner = %v, want R. Alvarez", got)
	}
	if got := out.Data["scheduled_date"]; got != "2026-03-02" {
		t.Errorf("scheduled_date = %v, want 2026-03-02", got)
	}
	if got := out.Data["scan_tier"]; got != "X7" {
		t.Errorf("scan_tier = %v, want X7", got)
	}
}

func TestRunCascade_RejectsNonAdjacentStages(t *testing.T) {
	logger = zap.NewNop()
	form := testhelpers.WriteSampleForm(t, t.TempDir())
	cmd, _ := newTestCmd()

	err := runCascade(cmd, form, "scheduling", "registration", "", false)
	if err == nil {
		t.Fatal("runCascade expected error for non-adjacent stages, got nil")
	}
	if !strings.Contains(err.Error(), "no prefill transition") {
		t.Errorf("error = %v, want transition rejection", err)
	}
}

func TestRunTables_Summary(t *testing.T) {
	logger = zap.NewNop()
	cmd, buf := newTestCmd()

	if err := runTables(cmd, false); err != nil {
		t.Fatalf("runTables failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"arch_rates", "modifiers", "margin floor 0.55"} {
		if !strings.Contains(out, want) {
			t.Errorf("tables summary missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestRunTables_Dump(t *testing.T) {
	logger = zap.NewNop()
	cmd, buf := newTestCmd()

	if err := runTables(cmd, true); err != nil {
		t.Fatalf("runTables --dump failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"margin_floor: 0.55", "slam_auto_threshold: 50000", "building_types:"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
}

func TestRunExport(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()
	form := testhelpers.WriteSampleForm(t, dir)
	outPath := filepath.Join(dir, "quote.xlsx")
	cmd, buf := newTestCmd()

	if err := runExport(cmd, form, outPath); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("workbook was not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("workbook is empty")
	}
	if !strings.Contains(buf.String(), "Wrote") {
		t.Errorf("export output = %q, want confirmation line", buf.String())
	}
}

func TestRootCommand_EndToEnd(t *testing.T) {
	form := testhelpers.WriteSampleForm(t, t.TempDir())

	var buf bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"totals", form, "--json"})

	if err := root.Execute(); err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	var totals services.QuoteTotals
	if err := json.Unmarshal(buf.Bytes(), &totals); err != nil {
		t.Fatalf("totals output is not valid JSON: %v\noutput:\n%s", err, buf.String())
	}
	if totals.IntegrityStatus != services.IntegrityPassed {
		t.Errorf("IntegrityStatus = %q, want passed", totals.IntegrityStatus)
	}
}

func TestRootCommand_UnknownRatesFile(t *testing.T) {
	form := testhelpers.WriteSampleForm(t, t.TempDir())
	defer func() { ratesFile = "" }()

	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"quote", form, "--rates", t.TempDir() + "/absent.yaml"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing rates file, got nil")
	}
}
