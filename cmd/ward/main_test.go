package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ehr/ward/internal/console"
	"github.com/ehr/ward/internal/domain/ward"
	"github.com/ehr/ward/internal/platform/census"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{"run": false, "replay": false, "sandbox": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestResolveRooms(t *testing.T) {
	tests := []struct {
		name      string
		flag, cfg int
		wantRooms int
		wantAsk   bool
	}{
		{"flag wins", 3, 8, 3, false},
		{"flag zero is explicit", 0, 8, 0, false},
		{"config used when flag unset", -1, 8, 8, false},
		{"prompt when neither set", -1, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms, ask := resolveRooms(tt.flag, tt.cfg)
			if rooms != tt.wantRooms || ask != tt.wantAsk {
				t.Errorf("resolveRooms(%d, %d) = (%d, %v), want (%d, %v)",
					tt.flag, tt.cfg, rooms, ask, tt.wantRooms, tt.wantAsk)
			}
		})
	}
}

func TestPrintOutcome(t *testing.T) {
	pt := ward.Patient{ID: 7, Name: "Ana", Room: 2}
	tests := []struct {
		outcome census.Outcome
		want    string
	}{
		{census.Outcome{Step: 1, Action: census.ActionAdmit, Patient: pt},
			"  1. Patient Ana admitted successfully in room 2.\n"},
		{census.Outcome{Step: 2, Action: census.ActionAdmit, Err: ward.ErrNoRoomsAvailable},
			"  2. No rooms available! Please wait.\n"},
		{census.Outcome{Step: 3, Action: census.ActionDischarge, ID: 9, Err: ward.ErrPatientNotFound},
			"  3. Patient with ID 9 not found.\n"},
		{census.Outcome{Step: 4, Action: census.ActionDischarge, Patient: pt},
			"  4. Patient Ana discharged successfully.\n"},
		{census.Outcome{Step: 5, Action: census.ActionTreat, Patient: pt},
			"  5. Treating critical patient: Ana (ID: 7)\n"},
		{census.Outcome{Step: 6, Action: census.ActionTreat, Err: ward.ErrNoCriticalPatients},
			"  6. No critical patients to manage.\n"},
		{census.Outcome{Step: 12, Action: census.ActionAdmit, Err: errors.New("boom")},
			" 12. Request rejected: boom\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		printOutcome(&buf, console.NewPrinter(&buf, console.NewPalette(false)), tt.outcome)
		if got := buf.String(); got != tt.want {
			t.Errorf("step %d: got %q, want %q", tt.outcome.Step, got, tt.want)
		}
	}
}

const replayPlan = `
rooms: 1
steps:
  - admit: {id: 1, name: Ana, age: 30, condition: Critical, date: 01-01-2024}
  - admit: {id: 2, name: Ben, age: 40, condition: Stable, date: 02-01-2024}
  - treat: true
`

func TestReplayCmd(t *testing.T) {
	t.Setenv("COLOR", "false")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(replayPlan), 0o600); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"replay", "--file", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"  1. Patient Ana admitted successfully in room 1.",
		"  2. No rooms available! Please wait.",
		"  3. Treating critical patient: Ana (ID: 1)",
		"Rooms: 1 total, 1 occupied, 0 free",
		"Records: 1 | Critical waiting: 0 | Stable waiting: 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestReplayCmd_RequiresFile(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"replay"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error when --file is missing")
	}
}

func TestSandboxCmd_Emit(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"sandbox", "--emit", "--seed", "5", "--patients", "4", "--rooms", "2"})
	if err := root.Execute(); err != nil {
		t.Fatalf("sandbox failed: %v", err)
	}

	plan, err := census.Load(&out)
	if err != nil {
		t.Fatalf("emitted plan does not load: %v", err)
	}
	if plan.Rooms != 2 {
		t.Errorf("expected 2 rooms, got %d", plan.Rooms)
	}
	admits := 0
	for _, s := range plan.Steps {
		if s.Action() == census.ActionAdmit {
			admits++
		}
	}
	if admits != 4 {
		t.Errorf("expected 4 admissions, got %d", admits)
	}
}

func TestRunCmd_ScriptedSession(t *testing.T) {
	t.Setenv("COLOR", "false")
	t.Setenv("ROOMS", "")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader("1\n1\n1\nAna\n30\nCritical\n01-01-2024\n5\n"))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run"})
	if err := root.Execute(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Enter the total number of rooms in the hospital: ",
		"Patient Ana admitted successfully in room 1.",
		"Exiting the system. Goodbye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
