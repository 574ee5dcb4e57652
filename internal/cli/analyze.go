/*
PURPOSE:
  Defines the 'analyze' subcommand.
  Interactive form for picking the algorithm, input order and size range.

REQUIREMENTS:
  User-specified:
  - Choose algorithm and order from lists; show its complexity while choosing.
  - Flag invalid size fields while typing; refuse to start an invalid run.

  Implementation-discovered:
  - Live feedback and the submit gate both go through params.Check.
  - huh needs a terminal on stdin.

ARCHITECTURE INTEGRATION:
  - Calls: executeRun() (shared with 'run')
  - Uses: github.com/charmbracelet/huh, internal/params

ERROR HANDLING:
  - Aborting the form is not an error.
  - Non-interactive stdin returns an error pointing at 'run'.

IMPLEMENTATION RULES:
  - Form fields start from the loaded config so 'analyze' and 'run' agree.

USAGE:
  complexity-runner analyze

SELF-HEALING INSTRUCTIONS:
  - If the form misbehaves over SSH, check TERM and huh accessible mode.

RELATED FILES:
  - internal/cli/run.go
  - internal/params/validate.go

MAINTENANCE:
  - Update when adding new run parameters.
*/

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/daryltucker/complexity-runner/internal/algo"
	"github.com/daryltucker/complexity-runner/internal/input"
	"github.com/daryltucker/complexity-runner/internal/model"
	"github.com/daryltucker/complexity-runner/internal/output"
	"github.com/daryltucker/complexity-runner/internal/params"
)

var errNotInteractive = errors.New("analyze needs an interactive terminal; use 'run' with flags instead")

// formValues backs the analyze form.
type formValues struct {
	Algorithm algo.ID
	Order     input.Order
	Min       string
	Max       string
	Step      string
}

func (v *formValues) raw() params.Raw {
	return params.Raw{Min: v.Min, Max: v.Max, Step: v.Step}
}

// fieldValidator gives live feedback for one size field against the
// current values of all three.
func (v *formValues) fieldValidator(f params.Field) func(string) error {
	return func(string) error {
		return params.Check(v.raw()).FieldErr(f)
	}
}

// Parameters is the submit gate.
func (v *formValues) Parameters() (model.RunParameters, error) {
	verdict := params.Check(v.raw())
	if err := verdict.Err(); err != nil {
		return model.RunParameters{}, err
	}
	return model.RunParameters{
		Algorithm: v.Algorithm,
		MinSize:   verdict.Min.Value,
		MaxSize:   verdict.Max.Value,
		Step:      verdict.Step.Value,
		Order:     v.Order,
	}, nil
}

func newForm(v *formValues) *huh.Form {
	reg := algo.NewRegistry(0)

	algOptions := make([]huh.Option[algo.ID], 0, len(algo.All()))
	for _, s := range algo.All() {
		algOptions = append(algOptions, huh.NewOption(s.Name, s.ID))
	}
	orderOptions := make([]huh.Option[input.Order], 0, len(input.Orders()))
	for _, o := range input.Orders() {
		orderOptions = append(orderOptions, huh.NewOption(o.String(), o))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[algo.ID]().
				Title("Algorithm").
				Options(algOptions...).
				Value(&v.Algorithm),
			huh.NewNote().
				Title("Complexity").
				DescriptionFunc(func() string {
					desc, _ := reg.Describe(v.Algorithm)
					return desc
				}, &v.Algorithm),
			huh.NewSelect[input.Order]().
				Title("Input order").
				Options(orderOptions...).
				Value(&v.Order),
		),
		huh.NewGroup(
			huh.NewInput().Title("Min Size").Value(&v.Min).Validate(v.fieldValidator(params.FieldMin)),
			huh.NewInput().Title("Max Size").Value(&v.Max).Validate(v.fieldValidator(params.FieldMax)),
			huh.NewInput().Title("Step").Value(&v.Step).Validate(v.fieldValidator(params.FieldStep)),
		),
	)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Pick the algorithm and size range interactively, then run",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return errNotInteractive
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		v := &formValues{
			Min:  strconv.Itoa(cfg.MinSize),
			Max:  strconv.Itoa(cfg.MaxSize),
			Step: strconv.Itoa(cfg.Step),
		}
		if id, err := algo.Parse(cfg.Algorithm); err == nil {
			v.Algorithm = id
		}
		if o, err := input.ParseOrder(cfg.Order); err == nil {
			v.Order = o
		}

		if err := newForm(v).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				output.NewConsole(cmd.OutOrStdout()).Info("Analysis cancelled")
				return nil
			}
			return fmt.Errorf("form failed: %w", err)
		}

		p, err := v.Parameters()
		if err != nil {
			return err
		}
		_, err = executeRun(cmd.OutOrStdout(), cfg, p)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
