package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"planning-bot/internal/app"
	"planning-bot/internal/config"
	"planning-bot/internal/export"
	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/service"
	"planning-bot/pkg/timeutil"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options - общие флаги всех команд
type options struct {
	establishment uint
	date          string
}

// env - сервисы, открытые для одной команды
type env struct {
	services *app.Services
	close    func() error
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "planctl",
		Short:         "Planning backend command line tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().UintVar(&opts.establishment, "establishment", 0, "Establishment ID")
	cmd.PersistentFlags().StringVar(&opts.date, "date", "", "Any date of the week (YYYY-MM-DD or DD.MM.YYYY), today by default")

	cmd.AddCommand(
		newWeekCmd(opts),
		newExportCmd(opts),
		newAbsenceCmd(opts),
		newApplyCmd(opts),
	)
	return cmd
}

// open читает конфигурацию из окружения и подключает бэкенд
func open(ctx context.Context) (*env, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file: %s", err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(cfg.LogLevel)

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}

	backend, closeFn, err := app.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &env{services: app.NewServices(backend, cfg, settings), close: closeFn}, nil
}

func (o *options) requireEstablishment() error {
	if o.establishment == 0 {
		return errors.New("--establishment is required")
	}
	return nil
}

func (o *options) weekDate() (time.Time, error) {
	if o.date == "" {
		return timeutil.Today(), nil
	}
	return timeutil.ParseDate(o.date)
}

func newWeekCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Print the weekly planning grid with hours, cost and overtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireEstablishment(); err != nil {
				return err
			}
			date, err := opts.weekDate()
			if err != nil {
				return err
			}

			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			grid, err := e.services.Planning.Week(cmd.Context(), opts.establishment, date)
			if err != nil {
				return err
			}
			return printGrid(cmd.OutOrStdout(), grid)
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the weekly planning grid to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireEstablishment(); err != nil {
				return err
			}
			date, err := opts.weekDate()
			if err != nil {
				return err
			}

			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			grid, err := e.services.Planning.Week(cmd.Context(), opts.establishment, date)
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("planning_%s.xlsx", grid.WeekStart.Format(timeutil.DateLayout))
			}

			workbook, err := export.NewWeekWorkbook(grid, fmt.Sprintf("Заведение #%d", opts.establishment))
			if err != nil {
				return err
			}
			defer workbook.Close()

			if err := workbook.SaveAs(out); err != nil {
				return fmt.Errorf("save workbook: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file, planning_<week>.xlsx by default")
	return cmd
}

func newAbsenceCmd(opts *options) *cobra.Command {
	var (
		userID   uint
		kind     string
		quantity string
		start    string
		end      string
		position string
	)

	cmd := &cobra.Command{
		Use:   "absence",
		Short: "Create an absence as one record per day, inclusive of both ends",
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := planning.ParseQuantity(quantity)
			if err != nil {
				return err
			}
			from, err := timeutil.ParseDate(start)
			if err != nil {
				return err
			}
			to := from
			if end != "" {
				if to, err = timeutil.ParseDate(end); err != nil {
					return err
				}
			}

			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			req := service.AbsenceRequest{
				UserID:   userID,
				Type:     models.ShiftType(kind),
				Quantity: qty,
				Position: position,
				Start:    from,
				End:      to,
			}
			result, err := e.services.Absences.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			printBatch(cmd.OutOrStdout(), result)
			if result.Status() != service.BatchComplete {
				return fmt.Errorf("absence %s: %w", result.Status(), result.Err())
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user", 0, "Employee ID")
	cmd.Flags().StringVar(&kind, "type", string(models.ShiftVacation), "Absence type: vacation, rtt, sick, unpaid, other")
	cmd.Flags().StringVar(&quantity, "quantity", "", "Quantity per day (1 = full day, 0.5 = half day)")
	cmd.Flags().StringVar(&start, "start", "", "First day")
	cmd.Flags().StringVar(&end, "end", "", "Last day, same as --start by default")
	cmd.Flags().StringVar(&position, "label", "", "Label, default depends on the type")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newApplyCmd(opts *options) *cobra.Command {
	var templateID, userID uint

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create a work shift from a template on --date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireEstablishment(); err != nil {
				return err
			}
			date, err := opts.weekDate()
			if err != nil {
				return err
			}

			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			templates, err := e.services.Templates.List(cmd.Context(), opts.establishment)
			if err != nil {
				return err
			}
			var tpl *models.ShiftTemplate
			for i := range templates {
				if templates[i].ID == templateID {
					tpl = &templates[i]
				}
			}
			if tpl == nil {
				return fmt.Errorf("template %d not found in establishment %d", templateID, opts.establishment)
			}

			shift, applicable, err := e.services.Shifts.ApplyTemplate(cmd.Context(), *tpl, userID, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created shift %d: %s - %s %s\n", shift.ID, shift.PlannedStart, shift.PlannedEnd, shift.Position)
			if !applicable {
				fmt.Fprintf(out, "warning: template %q is not meant for %s (days: %s)\n",
					tpl.Name, date.Weekday(), planning.ApplicableDaysLabel(*tpl))
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&templateID, "template", 0, "Template ID")
	cmd.Flags().UintVar(&userID, "user", 0, "Employee ID")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printGrid(w io.Writer, grid planning.WeekGrid) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"EMPLOYEE"}
	for _, d := range grid.Days {
		header = append(header, d.Format("Mon 02.01"))
	}
	header = append(header, "HOURS", "COST", "OVERTIME")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range grid.Rows {
		cells := []string{row.User.FullName}
		for _, shifts := range row.Days {
			labels := make([]string, 0, len(shifts))
			for _, s := range shifts {
				if s.IsWork() {
					labels = append(labels, s.PlannedStart.Format(timeutil.ClockLayout)+"-"+s.PlannedEnd.Format(timeutil.ClockLayout))
				} else {
					labels = append(labels, string(s.Type))
				}
			}
			cell := strings.Join(labels, ",")
			if cell == "" {
				cell = "-"
			}
			cells = append(cells, cell)
		}
		overtime := ""
		if row.Stats.IsOvertime {
			overtime = "yes"
		}
		cells = append(cells, row.Stats.HoursLabel(), row.Stats.CostLabel(), overtime)
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	hours, cost := planning.TeamTotals(grid.Stats())
	fmt.Fprintf(tw, "TOTAL%s\t%s\t%s\t\n", strings.Repeat("\t", len(grid.Days)), hours.StringFixed(1), cost.StringFixed(0))
	return tw.Flush()
}

func printBatch(w io.Writer, result service.BatchResult) {
	for _, o := range result.Outcomes {
		day := o.Day().Format(timeutil.DateLayout)
		if o.Err != nil {
			fmt.Fprintf(w, "%s\tfailed: %v\n", day, o.Err)
			continue
		}
		fmt.Fprintf(w, "%s\tcreated shift %d\n", day, o.Shift.ID)
	}
	fmt.Fprintf(w, "status: %s (%d created, %d failed)\n", result.Status(), len(result.Created()), len(result.Failed()))
}
