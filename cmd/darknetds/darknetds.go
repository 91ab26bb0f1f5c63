package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/darknetds/pkg/dataset"
	"github.com/cyclopcam/darknetds/pkg/preview"
	"github.com/cyclopcam/darknetds/pkg/provenance"
	"github.com/cyclopcam/darknetds/pkg/storage"
	"github.com/cyclopcam/logs"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

// runOptions are the optional extras around the dataset run itself
type runOptions struct {
	ConfigFile     string
	ProvenanceFile string
	PreviewDir     string
	PreviewCount   int
	PublishTarget  string
	Stdout         io.Writer // Receives the list of missing files. Defaults to os.Stdout
}

func main() {
	parser := argparse.NewParser("darknetds", "Generate a Darknet detection dataset from folders of human-validated samples")
	parentFolder := parser.StringPositional(&argparse.Options{Help: "Parent folder of the batch folders that hold validated samples", Required: true})
	outputFolder := parser.StringPositional(&argparse.Options{Help: "Output folder. The 'data' folder inside it is recreated", Required: true})
	configFile := parser.StringPositional(&argparse.Options{Help: "Configuration JSON file with the 'classes' mapping", Required: true})
	validFraction := parser.Float("", "valid-fraction", &argparse.Options{Help: "Share of samples used for validation", Default: dataset.DefaultValidFraction})
	samplesFolder := parser.String("", "samples-folder", &argparse.Options{Help: "Name of the validated samples folder inside each batch folder", Default: dataset.DefaultSamplesFolderName})
	splitIndex := parser.Selector("", "split-index", []string{string(dataset.SplitIndexGlobal), string(dataset.SplitIndexLocal)}, &argparse.Options{Help: "Apply the validation interval to the run-wide pair ID (global) or to the position inside each batch (local)", Default: string(dataset.SplitIndexGlobal)})
	provenanceFile := parser.String("", "provenance", &argparse.Options{Help: "Write a SQLite database mapping every pair ID to its source files"})
	previewDir := parser.String("", "preview", &argparse.Options{Help: "Render annotated preview images into this folder"})
	previewCount := parser.Int("", "preview-count", &argparse.Options{Help: "Number of preview images to render", Default: preview.DefaultLimit})
	publishTarget := parser.String("", "publish", &argparse.Options{Help: "After a successful run, copy the data folder to this directory or to gs://bucket/prefix"})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	check(err)

	opts := dataset.Options{
		ParentFolder:      *parentFolder,
		OutputFolder:      *outputFolder,
		SamplesFolderName: *samplesFolder,
		ValidFraction:     *validFraction,
		SplitIndex:        dataset.SplitIndex(*splitIndex),
	}
	extra := runOptions{
		ConfigFile:     *configFile,
		ProvenanceFile: *provenanceFile,
		PreviewDir:     *previewDir,
		PreviewCount:   *previewCount,
		PublishTarget:  *publishTarget,
		Stdout:         os.Stdout,
	}
	status := run(logger, opts, extra)
	logger.Close()
	os.Exit(status)
}

// run returns the process exit code
func run(logger logs.Log, opts dataset.Options, extra runOptions) int {
	if extra.Stdout == nil {
		extra.Stdout = os.Stdout
	}
	cfg, err := dataset.LoadConfig(extra.ConfigFile)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	classNames, err := cfg.ClassNames()
	if err != nil {
		logger.Errorf("Invalid configuration %v: %v", extra.ConfigFile, err)
		return 1
	}
	dataDir := dataset.Layout{Root: opts.OutputFolder}.DataDir()

	var ledger *provenance.Ledger
	if extra.ProvenanceFile != "" {
		if isInside(extra.ProvenanceFile, dataDir) {
			logger.Errorf("The provenance database may not be inside %v, which is deleted on every run", dataDir)
			return 1
		}
		ledger, err = provenance.Open(logger, extra.ProvenanceFile)
		if err != nil {
			logger.Errorf("%v", err)
			return 1
		}
		defer ledger.Close()
		opts.Observers = append(opts.Observers, ledger)
	}

	if extra.PreviewDir != "" {
		if isInside(extra.PreviewDir, dataDir) {
			logger.Errorf("The preview folder may not be inside %v, which is deleted on every run", dataDir)
			return 1
		}
		renderer, err := preview.NewRenderer(logger, extra.PreviewDir, classNames, extra.PreviewCount)
		if err != nil {
			logger.Errorf("%v", err)
			return 1
		}
		opts.Observers = append(opts.Observers, renderer)
	}

	var store storage.Storage
	if extra.PublishTarget != "" {
		store, err = storage.Open(logger, extra.PublishTarget)
		if err != nil {
			logger.Errorf("Failed to open publish target %v: %v", extra.PublishTarget, err)
			return 1
		}
		if err := storage.CheckTarget(store, opts.OutputFolder, dataset.DataFolderName); err != nil {
			logger.Errorf("%v", err)
			return 1
		}
	}

	assembler, err := dataset.NewAssembler(logger, cfg, opts)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	summary, err := assembler.Run()
	if err != nil {
		var mismatch *dataset.PairMismatchError
		if errors.As(err, &mismatch) {
			logger.Errorf("Number of image files: %v", mismatch.NumImages)
			logger.Errorf("Number of label files: %v", mismatch.NumAnnotations)
			logger.Errorf("Missing counterparts in %v:", mismatch.Folder)
			for _, m := range mismatch.Missing {
				fmt.Fprintln(extra.Stdout, m)
			}
		} else {
			logger.Errorf("%v", err)
		}
		return 1
	}
	summary.Log(logger)

	if ledger != nil {
		if err := ledger.Flush(); err != nil {
			logger.Errorf("Failed to save provenance: %v", err)
			return 1
		}
	}

	if store != nil {
		if _, err := storage.Publish(logger, store, opts.OutputFolder, dataset.DataFolderName); err != nil {
			logger.Errorf("Failed to publish dataset: %v", err)
			return 1
		}
	}

	logger.Infof("Darknet detection dataset generator finished successfully")
	return 0
}

// isInside returns true if path is dir or anything below it
func isInside(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
