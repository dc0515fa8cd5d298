package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/km-arc/go-hr/app/providers"
	"github.com/km-arc/go-hr/app/services"
	"github.com/km-arc/go-hr/framework/app"
	"github.com/km-arc/go-hr/framework/container"
)

// newRootCmd builds the CLI. A nil logger means one is built from config.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	var envFiles []string

	bootstrap := func() (*app.Application, *services.HRService, error) {
		a, err := app.New(app.Options{EnvFiles: envFiles, Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		if err := a.Register(&providers.PolicyCatalogProvider{}); err != nil {
			return nil, nil, err
		}
		if err := a.Register(&providers.HRServiceProvider{}); err != nil {
			return nil, nil, err
		}
		if err := a.Boot(); err != nil {
			return nil, nil, err
		}
		svc, err := container.Resolve[*services.HRService](a.Container, "hr.service")
		if err != nil {
			return nil, nil, err
		}
		return a, svc, nil
	}

	root := &cobra.Command{
		Use:          "gohr",
		Short:        "Roles, the shared HR system and salary bonus policies",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")

	root.AddCommand(
		newServeCmd(bootstrap),
		newDemoCmd(bootstrap),
		newRoleCmd(bootstrap),
		newSystemCmd(bootstrap),
		newSalaryCmd(bootstrap),
	)
	return root
}

type bootstrapFunc func() (*app.Application, *services.HRService, error)

func newServeCmd(bootstrap bootstrapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HR HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := bootstrap()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defer func() { _ = a.Logger().Sync() }()
			return a.Run(ctx)
		},
	}
}

func newDemoCmd(bootstrap bootstrapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through roles, the shared system and a policy swap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, svc, err := bootstrap()
			if err != nil {
				return err
			}
			return runDemo(cmd.OutOrStdout(), svc)
		},
	}
}

func runDemo(w io.Writer, svc *services.HRService) error {
	for i, kind := range []string{"manager", "developer"} {
		r, err := svc.CreateRole(kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Factory Example: Employee %d Role: %s\n", i+1, r.Label())
	}

	sys, err := svc.System()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Singleton Example: %s\n", sys.Name())
	same, err := svc.SameSystem()
	if err != nil {
		return err
	}
	if same {
		fmt.Fprintln(w, "Singleton Example: Both instances are same")
	}

	e, err := svc.Hire("Rahim", 40000, "fixed")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Strategy Example (Fixed): %s's total salary: %s BDT\n", e.Name, money(svc.Quote(e).TotalRounded))

	if err := svc.Reassign(e, "percentage"); err != nil {
		return err
	}
	fmt.Fprintf(w, "Strategy Example (Percentage): %s's total salary: %s BDT\n", e.Name, money(svc.Quote(e).TotalRounded))
	return nil
}

func newRoleCmd(bootstrap bootstrapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "role <type>",
		Short: "Create a role from its type (manager, developer, intern)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := bootstrap()
			if err != nil {
				return err
			}
			r, err := svc.CreateRole(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Label())
			return nil
		},
	}
}

func newSystemCmd(bootstrap bootstrapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "system",
		Short: "Show the shared HR system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, svc, err := bootstrap()
			if err != nil {
				return err
			}
			sys, err := svc.System()
			if err != nil {
				return err
			}
			same, err := svc.SameSystem()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (same instance: %t)\n", sys.Name(), same)
			return nil
		},
	}
}

func newSalaryCmd(bootstrap bootstrapFunc) *cobra.Command {
	var (
		name   string
		salary float64
		policy string
		swap   string
	)
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Compute an employee's total salary under a bonus policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, svc, err := bootstrap()
			if err != nil {
				return err
			}
			e, err := svc.Hire(name, salary, policy)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			q := svc.Quote(e)
			fmt.Fprintf(out, "%s: %s BDT (%s)\n", q.Name, money(q.TotalRounded), q.Policy)

			if swap == "" {
				return nil
			}
			if err := svc.Reassign(e, swap); err != nil {
				return err
			}
			q = svc.Quote(e)
			fmt.Fprintf(out, "%s: %s BDT (%s)\n", q.Name, money(q.TotalRounded), q.Policy)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "employee name")
	cmd.Flags().Float64Var(&salary, "salary", 0, "base salary")
	cmd.Flags().StringVar(&policy, "policy", "fixed", "bonus policy name")
	cmd.Flags().StringVar(&swap, "swap", "", "policy to switch to after the first total")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
