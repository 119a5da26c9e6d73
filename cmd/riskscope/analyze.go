package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/riskscope/riskscope/pkg/catalog"
	"github.com/riskscope/riskscope/pkg/scoring"
	"github.com/riskscope/riskscope/pkg/surface"
	"github.com/riskscope/riskscope/pkg/validate"
)

type analyzeFlags struct {
	val   float64
	flag1 bool
	text  string
	hour  int
	email string
	addr1 string
	addr2 string
	count int
	date  string

	inputFile      string
	example        string
	fromHistory    string
	now            string
	outputFormat   string
	save           bool
	skipValidation bool
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score one record and print its risk level and factors",
		Long: `Score one record. Field values come from the flags below, whose defaults
form a complete sample record. A record can instead come from a YAML/JSON
file (--input), a bundled example (--example) or a saved submission
(--from-history, by ID prefix). Field flags set explicitly override it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts, &flags)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&flags.val, "val", 2.5, "Base value (>= 0)")
	f.BoolVar(&flags.flag1, "flag1", true, "Flag 1")
	f.StringVar(&flags.text, "text", "short", "Free text")
	f.IntVar(&flags.hour, "hour", 3, "Hour of day (0-23)")
	f.StringVar(&flags.email, "email", "user@temp.com", "Email address")
	f.StringVar(&flags.addr1, "addr1", "Street A", "First address")
	f.StringVar(&flags.addr2, "addr2", "Street B", "Second address")
	f.IntVar(&flags.count, "count", 8, "Count (>= 0)")
	f.StringVar(&flags.date, "date", "2025-07-05", "Reference date (YYYY-MM-DD)")

	f.StringVarP(&flags.inputFile, "input", "i", "", "Read the record from a YAML or JSON file")
	f.StringVar(&flags.example, "example", "", "Start from the named bundled example (see 'riskscope examples')")
	f.StringVar(&flags.fromHistory, "from-history", "", "Start from the saved submission with this ID prefix")
	f.StringVar(&flags.now, "now", "", "Evaluation time, RFC3339 or YYYY-MM-DD (default: current time)")
	f.StringVarP(&flags.outputFormat, "output", "o", "", "Output format: text or json (default from config)")
	f.BoolVar(&flags.save, "save", false, "Append the record to history")
	f.BoolVar(&flags.skipValidation, "skip-validation", false, "Score the record without validating it")
	cmd.MarkFlagsMutuallyExclusive("input", "example", "from-history")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *rootOptions, flags *analyzeFlags) error {
	now, err := parseNow(flags.now)
	if err != nil {
		return err
	}

	form, err := buildForm(cmd, opts, flags)
	if err != nil {
		return err
	}

	renderer := surface.ForFormat(firstNonEmpty(flags.outputFormat, opts.cfg.Output.Format))
	out := cmd.OutOrStdout()
	engine := scoring.Default()

	var in scoring.Input
	if flags.skipValidation {
		in = lenientInput(form)
	} else {
		in, err = validate.Validate(form)
		var verr *validate.Error
		if errors.As(err, &verr) {
			unset := scoring.Unset()
			if rerr := renderer.Render(out, &unset); rerr != nil {
				return rerr
			}
			for _, fe := range verr.Fields {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("validation failed for %d field(s)", len(verr.Fields))
		}
		if err != nil {
			return err
		}
	}

	res := engine.AnalyzeAt(in, now)
	if err := renderer.Render(out, &res); err != nil {
		return err
	}

	if flags.save {
		store, err := opts.openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		entry, err := store.Add(cmd.Context(), in, res)
		if err != nil {
			return err
		}
		slog.Info("saved to history", "id", entry.ID)
	}
	return nil
}

// buildForm assembles the form from the chosen record source and the
// field flags.
func buildForm(cmd *cobra.Command, opts *rootOptions, flags *analyzeFlags) (validate.Form, error) {
	form := validate.Form{
		Val:   &flags.val,
		Flag1: flags.flag1,
		Text:  flags.text,
		Hour:  &flags.hour,
		Email: flags.email,
		Addr1: flags.addr1,
		Addr2: flags.addr2,
		Count: &flags.count,
		Date:  flags.date,
	}

	var (
		base validate.Form
		err  error
	)
	switch {
	case flags.inputFile != "":
		base, err = formFromFile(flags.inputFile)
	case flags.example != "":
		base, err = formFromExample(flags.example)
	case flags.fromHistory != "":
		base, err = formFromHistory(cmd.Context(), opts, flags.fromHistory)
	default:
		return form, nil
	}
	if err != nil {
		return validate.Form{}, err
	}

	changed := cmd.Flags().Changed
	if changed("val") {
		base.Val = form.Val
	}
	if changed("flag1") {
		base.Flag1 = form.Flag1
	}
	if changed("text") {
		base.Text = form.Text
	}
	if changed("hour") {
		base.Hour = form.Hour
	}
	if changed("email") {
		base.Email = form.Email
	}
	if changed("addr1") {
		base.Addr1 = form.Addr1
	}
	if changed("addr2") {
		base.Addr2 = form.Addr2
	}
	if changed("count") {
		base.Count = form.Count
	}
	if changed("date") {
		base.Date = form.Date
	}
	return base, nil
}

func formFromFile(path string) (validate.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return validate.Form{}, fmt.Errorf("reading input: %w", err)
	}
	// JSON is a subset of YAML, so one decoder serves both.
	var f validate.Form
	if err := yaml.Unmarshal(data, &f); err != nil {
		return validate.Form{}, fmt.Errorf("parsing input %s: %w", path, err)
	}
	return f, nil
}

func formFromExample(name string) (validate.Form, error) {
	examples, err := catalog.Load()
	if err != nil {
		return validate.Form{}, err
	}
	ex, ok := catalog.Find(examples, name)
	if !ok {
		return validate.Form{}, fmt.Errorf("unknown example %q", name)
	}
	return validate.FromInput(ex.Input), nil
}

// formFromHistory loads a saved submission. The store is closed before
// returning so --save can reopen it.
func formFromHistory(ctx context.Context, opts *rootOptions, prefix string) (validate.Form, error) {
	store, err := opts.openStore(ctx)
	if err != nil {
		return validate.Form{}, err
	}
	defer store.Close()

	entry, err := store.Find(ctx, prefix)
	if err != nil {
		return validate.Form{}, err
	}
	slog.Debug("re-scoring saved submission", "id", entry.ID, "submitted_at", entry.SubmittedAt)
	return validate.FromInput(entry.Input), nil
}

// lenientInput converts a form without any checks. Missing numbers become
// zero and an unparseable date becomes the zero time.
func lenientInput(f validate.Form) scoring.Input {
	in := scoring.Input{
		Flag1: f.Flag1,
		Text:  f.Text,
		Email: f.Email,
		Addr1: f.Addr1,
		Addr2: f.Addr2,
	}
	if f.Val != nil {
		in.Val = *f.Val
	}
	if f.Hour != nil {
		in.Hour = *f.Hour
	}
	if f.Count != nil {
		in.Count = *f.Count
	}
	if t, err := time.Parse(validate.DateLayout, f.Date); err == nil {
		in.ReferenceDate = t
	} else {
		slog.Warn("unparseable date, treating as not recent", "date", f.Date)
	}
	return in
}
