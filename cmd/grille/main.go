package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	_ "github.com/marcboeker/go-duckdb"

	"grille"
	"grille/store/duck"
	"grille/util"
)

const (
	cfgMode = 0644
	logMode = 0644
)

var sample = []byte(`data_file: people.csv
table: people
log_path: grille.log
placeholder: end
grid:
  selection_unit: cell_or_row_header
  selection_mode: extended
  refresh_ratio: 0.5
`)

func main() {

	cfgPath := flag.String("c", "grille.yaml", "config file, a sample is written when missing")
	dataFile := flag.String("f", "", "data file, overrides data_file from config")
	write := flag.Bool("w", false, "write the resolved config, columns included, and exit")
	flag.Parse()

	cfg := &grille.Config{}
	created, err := util.LoadConfig(cfg, *cfgPath, sample, cfgMode)
	if err != nil {
		fail(err)
	}
	if created {
		fmt.Printf("wrote sample config to %s\n", *cfgPath)
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	err = cfg.Validate()
	if err != nil {
		fail(err)
	}

	logFile, closeLog := util.OpenLog(cfg.LogPath, logMode)
	defer closeLog()

	ctx := context.Background()
	lgr := &sabot.Sabot{Writer: logFile, MaxLen: 999}
	lgr.Info(ctx, "starting", "config", *cfgPath, "data_file", cfg.DataFile)

	dk, err := duck.New(ctx, lgr)
	if err != nil {
		fail(err)
	}
	defer dk.Close()

	err = dk.Load(cfg.DataFile, cfg.Table)
	if err != nil {
		lgr.Error(ctx, "failed to load", err)
		fail(err)
	}

	if *write {
		if len(cfg.Columns) == 0 {
			cfg.Columns = dk.Columns()
		}
		err = util.SaveConfig(cfg, *cfgPath, cfgMode)
		if err != nil {
			fail(err)
		}
		fmt.Printf("wrote config to %s\n", *cfgPath)
		return
	}

	model, err := grille.NewModel(ctx, cfg, dk, lgr)
	if err != nil {
		lgr.Error(ctx, "failed to create model", err)
		fail(err)
	}

	_, err = tea.NewProgram(model).Run()
	if err != nil {
		lgr.Error(ctx, "program failed", err)
		fail(err)
	}
	lgr.Info(ctx, "shutting down")
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}
