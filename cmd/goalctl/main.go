// Command goalctl submits a vehicle purchase goal and prints the projection.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"

	"goal-planner/client"
	"goal-planner/config"
	"goal-planner/natsrpc"
)

func main() {
	cfg := config.Load()

	fs := flag.NewFlagSet("goalctl", flag.ExitOnError)
	var (
		isNew    = fs.String(client.FieldIsNew, "", `"true" for a new vehicle`)
		model    = fs.String(client.FieldModel, "", "vehicle model")
		year     = fs.String(client.FieldYear, "", "model year")
		mileage  = fs.String(client.FieldMaxMileage, "", "maximum mileage")
		payment  = fs.String(client.FieldPaymentMethod, "", "cash or financing")
		maxEMI   = fs.String(client.FieldMaxEMI, "", "maximum monthly installment (financing)")
		maxTerm  = fs.String(client.FieldMaxTerm, "", "maximum term in months (financing)")
		down     = fs.String(client.FieldDownPayment, "", "available down payment")
		saving   = fs.String(client.FieldMonthlySaving, "", "monthly saving")
		income   = fs.String(client.FieldMonthlyIncome, "", "monthly income")
		expenses = fs.String(client.FieldMonthlyExpenses, "", "monthly expenses")
		chartOut = fs.String("chart", "", "write the savings chart PNG to this file")
		save     = fs.Bool("save", false, "save the goal after a successful projection")
		useNATS  = fs.Bool("nats", false, "submit over NATS (NATS_URL) instead of HTTP")
	)
	fs.Parse(os.Args[1:])

	form := url.Values{}
	for name, v := range map[string]*string{
		client.FieldIsNew:           isNew,
		client.FieldModel:           model,
		client.FieldYear:            year,
		client.FieldMaxMileage:      mileage,
		client.FieldPaymentMethod:   payment,
		client.FieldMaxEMI:          maxEMI,
		client.FieldMaxTerm:         maxTerm,
		client.FieldDownPayment:     down,
		client.FieldMonthlySaving:   saving,
		client.FieldMonthlyIncome:   income,
		client.FieldMonthlyExpenses: expenses,
	} {
		if *v != "" {
			form.Set(name, *v)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := run(cfg, form, *chartOut, *save, *useNATS, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, form url.Values, chartOut string, save, useNATS bool, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpSubmitter := client.NewHTTPSubmitter(cfg.GoalAPIURL, nil)

	var submitter client.Submitter = httpSubmitter
	if useNATS {
		if cfg.NATSURL == "" {
			return errors.New("NATS_URL is not set")
		}
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("goalctl"))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Close()
		submitter = natsrpc.NewSubmitter(nc, cfg.NATSSubject)
	}

	surface := client.NewChartSurface(0, 0)
	ctl := client.NewController(submitter, client.NewWriterNotifier(os.Stdout), surface, client.Options{
		Timeout: cfg.SubmitTimeout,
		Saver:   httpSubmitter,
		Logger:  logger,
	})
	ctl.SelectPaymentMethod(form.Get(client.FieldPaymentMethod))

	if err := ctl.SubmitForm(ctx, form); err != nil {
		return err
	}

	view := ctl.View()
	printView(os.Stdout, view)

	if chartOut != "" {
		if err := writeChart(surface, view.ChartMount, chartOut); err != nil {
			return err
		}
	}
	if save {
		return ctl.Save(ctx, form)
	}
	return nil
}

func printView(w io.Writer, v client.View) {
	fmt.Fprintf(w, "Estimated purchase date: %s\n", v.EstimatedDate)
	fmt.Fprintf(w, "Down payment:            %s\n", v.DownPayment)
	fmt.Fprintf(w, "Car price:               %s\n", v.CarPrice)
	if v.Financing.Visible {
		fmt.Fprintf(w, "Monthly payment:         %s\n", v.Financing.MonthlyPayment)
		fmt.Fprintf(w, "Payment period (months): %s\n", v.Financing.PaymentPeriod)
	}
	if v.PromotionVisible {
		fmt.Fprintln(w, "Promotion:               yes")
	}
	if v.Explanation != "" {
		fmt.Fprintf(w, "\n%s\n", v.Explanation)
	}
}

func writeChart(surface *client.ChartSurface, mount, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := surface.WritePNG(mount, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
