package cli

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
	"github.com/jurisdesk/prazo-engine/internal/domain/engine"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

type computeOptions struct {
	calendarPaths []string
	code          string
	trigger       string
	method        string
	baseDays      int
	state         string
	parties       []string
	outputJSON    bool
}

// newComputeCommand computes a single deadline offline, without a server or
// database, from calendar JSON files on disk.
func newComputeCommand() *cobra.Command {
	opts := &computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute one deadline offline from calendar files",
		Long: "Compute resolves a deadline from the built-in catalog and the court\ncalendars given as JSON files, without contacting a server.\n\nParties are given as pole:type[:counsel_id], for example:\n  --party respondent:federal_treasury\n  --party claimant:individual:oab-12345",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&opts.calendarPaths, "calendar", nil, "court calendar JSON file (repeatable)")
	f.StringVar(&opts.code, "code", "", "catalog entry code (e.g. contestacao)")
	f.StringVar(&opts.trigger, "trigger", "", "trigger date (YYYY-MM-DD)")
	f.StringVar(&opts.method, "method", "", "service method (e.g. postal_ack)")
	f.IntVar(&opts.baseDays, "days", 0, "base days override (0 uses the statutory term)")
	f.StringVar(&opts.state, "state", "", "case state code for state-scoped holidays (e.g. SP)")
	f.StringArrayVar(&opts.parties, "party", nil, "party as pole:type[:counsel_id] (repeatable)")
	f.BoolVar(&opts.outputJSON, "json", false, "print the full result as JSON")

	_ = cmd.MarkFlagRequired("calendar")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("trigger")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func runCompute(cmd *cobra.Command, opts *computeOptions) error {
	snap, err := loadSnapshot(opts.calendarPaths)
	if err != nil {
		return err
	}
	if opts.state != "" {
		snap = snap.ForState(opts.state)
	}

	entry, err := catalog.NewRegistry().GetEntry(context.Background(), strings.ToUpper(opts.code))
	if err != nil {
		return err
	}

	trigger, err := time.Parse("2006-01-02", opts.trigger)
	if err != nil {
		return errors.Newf(errors.ErrCodeInvalidComputationInput, "invalid trigger date %q, want YYYY-MM-DD", opts.trigger)
	}

	parties, err := parseParties(opts.parties)
	if err != nil {
		return err
	}

	input := engine.Input{
		TriggerDate: trigger,
		Method:      engine.ServiceMethod(opts.method),
		Entry:       entry,
		Parties:     parties,
		Snapshot:    snap,
	}
	if opts.baseDays > 0 {
		input.BaseDaysOverride = &opts.baseDays
	}

	result, err := engine.New(0).Compute(input)
	if err != nil {
		return err
	}

	if opts.outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.NoFixedTerm {
		cmd.Printf("%s: no fixed term (%s)\n", entry.Code, entry.Name)
		return nil
	}
	cmd.Printf("%s (%s)\n", entry.Code, entry.Name)
	cmd.Printf("  trigger:        %s\n", result.TriggerDate.Format("2006-01-02"))
	cmd.Printf("  start:          %s\n", result.StartDate.Format("2006-01-02"))
	cmd.Printf("  due:            %s\n", result.DueDate.Format("2006-01-02"))
	cmd.Printf("  effective days: %d (%s)\n", result.EffectiveDays, result.Mode)
	if result.DoublingApplied {
		cmd.Printf("  doubled:        %s\n", result.DoublingReason)
	}
	return nil
}

func loadSnapshot(paths []string) (*calendar.Snapshot, error) {
	calendars := make([]*calendar.CourtCalendar, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read calendar file")
		}
		var cal calendar.CourtCalendar
		if err := json.Unmarshal(data, &cal); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCalendarInvalid, "failed to decode calendar file "+path)
		}
		if err := cal.Validate(); err != nil {
			return nil, err
		}
		calendars = append(calendars, &cal)
	}
	return calendar.NewSnapshot(calendars...)
}

func parseParties(specs []string) ([]engine.Party, error) {
	parties := make([]engine.Party, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) < 2 {
			return nil, errors.Newf(errors.ErrCodeInvalidPartyComposition, "invalid party %q, want pole:type[:counsel_id]", spec)
		}
		p := engine.Party{
			Pole: engine.Pole(parts[0]),
			Type: engine.PartyType(parts[1]),
		}
		if len(parts) == 3 {
			p.CounselID = parts[2]
		}
		parties = append(parties, p)
	}
	return parties, nil
}
