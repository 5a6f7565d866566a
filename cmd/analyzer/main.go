package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"ogacli/internal/analytics"
	"ogacli/internal/config"
	"ogacli/internal/dataset"
	"ogacli/internal/exporter"
	"ogacli/internal/infrastructure"
	"ogacli/internal/pipeline"
	"ogacli/pkg/contracts"
	"ogacli/pkg/contracts/domain"
)

func main() {
	athletesPath := flag.String("athletes", "", "athlete events file (CSV or XLSX, overrides config)")
	regionsPath := flag.String("regions", "", "NOC region mapping file (CSV or XLSX, overrides config)")
	outDir := flag.String("out", "", "report output directory (overrides config)")
	noExcel := flag.Bool("no-excel", false, "skip the XLSX workbook")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *athletesPath != "" {
		cfg.Dataset.AthletesPath = *athletesPath
	}
	if *regionsPath != "" {
		cfg.Dataset.RegionsPath = *regionsPath
	}
	if *outDir != "" {
		cfg.Export.OutDir = *outDir
	}
	if *noExcel {
		cfg.Export.Excel = false
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info(contracts.GetVersionString(),
		slog.String("athletes", cfg.Dataset.AthletesPath),
		slog.String("regions", cfg.Dataset.RegionsPath),
		slog.String("out_dir", cfg.Export.OutDir))

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	p := pipeline.New(cfg.Pipeline, dataset.NewLoader(logger), pipeline.WithLogger(logger))

	result, err := p.Run(ctx, cfg.Dataset.AthletesPath, cfg.Dataset.RegionsPath)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	analyzer := analytics.New(result.Canonical, logger)
	reports := buildReports(analyzer, result)

	csvWriter := exporter.NewCSVWriter(cfg.Export.OutDir, logger)
	jsonWriter := exporter.NewJSONWriter(cfg.Export.OutDir, logger)
	for _, report := range reports {
		if err := csvWriter.WriteReport(report); err != nil {
			return fmt.Errorf("export %s: %w", report.Name, err)
		}
		if err := jsonWriter.WriteReport(report); err != nil {
			return fmt.Errorf("export %s: %w", report.Name, err)
		}
	}

	if cfg.Export.Excel {
		xlsxWriter := exporter.NewXLSXWriter(cfg.Export.OutDir, logger)
		if err := xlsxWriter.WriteWorkbook("analysis", reports); err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
	}

	// Correlations go out as JSON only; a one-row CSV says nothing.
	if trend, err := analyzer.ParticipationTrend(domain.SeasonSummer); err == nil {
		if err := jsonWriter.WriteValue("participation_trend", trend.Pairs, trend); err != nil {
			return fmt.Errorf("export participation trend: %w", err)
		}
	}
	if success, err := analyzer.SuccessBySize(); err == nil {
		if err := jsonWriter.WriteValue("success_by_size", success.Pairs, success); err != nil {
			return fmt.Errorf("export success by size: %w", err)
		}
	}

	logger.Info("analysis complete",
		slog.Int("canonical_rows", len(result.Canonical)),
		slog.Int("reports", len(reports)),
		slog.String("out_dir", cfg.Export.OutDir))
	return nil
}

func buildReports(analyzer *analytics.Analyzer, result *pipeline.Result) []exporter.Report {
	latest := latestYear(result.Canonical)

	return []exporter.Report{
		exporter.CleaningSummaryReport("cleaning_summary", result),
		exporter.ParticipationReport("participation_summer", analyzer.ParticipationByYear(domain.SeasonSummer)),
		exporter.ParticipationReport("participation_winter", analyzer.ParticipationByYear(domain.SeasonWinter)),
		exporter.GenderReport("gender_summer", analyzer.GenderCountsByGames(domain.SeasonSummer)),
		exporter.GenderReport("gender_winter", analyzer.GenderCountsByGames(domain.SeasonWinter)),
		exporter.SportBalanceReport("sport_balance", analyzer.SportGenderBalance(latest)),
		exporter.MedalTableReport("medal_table", analyzer.MedalTable("")),
		exporter.NationReport("nation_participation", analyzer.NationParticipation()),
	}
}

func latestYear(table domain.Table) int {
	latest := 0
	for _, row := range table {
		if row.Year > latest {
			latest = row.Year
		}
	}
	return latest
}
