package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyclopcam/darknetds/pkg/iox"
	"github.com/cyclopcam/darknetds/pkg/yolo"
	"github.com/cyclopcam/logs"
)

// Log cumulative progress every this many samples
const progressInterval = 500

// Options controls a dataset run
type Options struct {
	ParentFolder      string     // Parent of the batch folders
	OutputFolder      string     // The data directory is created under here
	SamplesFolderName string     // Defaults to DefaultSamplesFolderName
	ValidFraction     float64    // Must be in (0, 1]. The CLI passes DefaultValidFraction unless told otherwise
	SplitIndex        SplitIndex // Defaults to SplitIndexGlobal
	Observers         []SampleObserver
}

// Sample is one image/annotation pair after it has been copied into the dataset
type Sample struct {
	ID            int
	Folder        string // The samples folder that the pair came from
	ImageSrc      string
	AnnotationSrc string
	ImageDst      string
	AnnotationDst string
	RelativePath  string // Line written into train.txt or valid.txt
	Split         Split
	Annotation    *yolo.Annotation
}

// SampleObserver is told about every sample after it has been written.
// An error from an observer aborts the run.
type SampleObserver interface {
	AddSample(s *Sample) error
}

// Assembler builds a dataset. It is single use: create one per run.
type Assembler struct {
	Log        logs.Log
	Layout     Layout
	opts       Options
	classNames []string

	counter             int // Next pair ID. Shared by all batches.
	numTrain            int
	numValid            int
	objectsPerClass     []int
	unknownClassObjects int
	invalidLines        int
	bytesCopied         int64

	trainFile *os.File
	validFile *os.File
}

// NewAssembler validates the options and the class list
func NewAssembler(log logs.Log, cfg *Config, opts Options) (*Assembler, error) {
	if opts.SamplesFolderName == "" {
		opts.SamplesFolderName = DefaultSamplesFolderName
	}
	if err := validateFraction(opts.ValidFraction); err != nil {
		return nil, err
	}
	splitIndex, err := ParseSplitIndex(string(opts.SplitIndex))
	if err != nil {
		return nil, err
	}
	opts.SplitIndex = splitIndex
	if opts.ParentFolder == "" || opts.OutputFolder == "" {
		return nil, fmt.Errorf("Parent folder and output folder must both be specified")
	}
	classNames, err := cfg.ClassNames()
	if err != nil {
		return nil, err
	}
	return &Assembler{
		Log:             log,
		Layout:          Layout{Root: opts.OutputFolder},
		opts:            opts,
		classNames:      classNames,
		objectsPerClass: make([]int, len(classNames)),
	}, nil
}

// Run builds the whole dataset and returns the summary.
// A *PairMismatchError means that a samples folder needs fixing before the run can succeed.
// Files written before the error are left in place.
func (a *Assembler) Run() (*Summary, error) {
	a.Log.Infof("Darknet detection dataset generator started")
	if err := a.Initialize(); err != nil {
		return nil, err
	}
	defer a.Close()

	folders, err := DiscoverSubfolders(a.Log, a.opts.ParentFolder, a.opts.SamplesFolderName)
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		if err := a.ProcessSubfolder(folder); err != nil {
			return nil, err
		}
	}
	if err := a.Close(); err != nil {
		return nil, err
	}
	a.Log.Infof("Dataset written to %v", a.Layout.DataDir())
	return a.Summary(), nil
}

// Initialize recreates the output tree and opens train.txt and valid.txt for append.
// The files stay open until Close.
func (a *Assembler) Initialize() error {
	if err := InitializeOutput(a.Log, a.Layout, a.classNames); err != nil {
		return err
	}
	var err error
	if a.trainFile, err = os.OpenFile(a.Layout.TrainFile(), os.O_WRONLY|os.O_APPEND, 0); err != nil {
		return err
	}
	if a.validFile, err = os.OpenFile(a.Layout.ValidFile(), os.O_WRONLY|os.O_APPEND, 0); err != nil {
		a.trainFile.Close()
		a.trainFile = nil
		return err
	}
	return nil
}

// Close releases the index files. It is safe to call more than once.
func (a *Assembler) Close() error {
	var firstErr error
	for _, f := range []**os.File{&a.trainFile, &a.validFile} {
		if *f != nil {
			if err := (*f).Close(); err != nil && firstErr == nil {
				firstErr = err
			}
			*f = nil
		}
	}
	return firstErr
}

// ProcessSubfolder copies every pair of one samples folder into the dataset
func (a *Assembler) ProcessSubfolder(folder string) error {
	if a.trainFile == nil {
		return fmt.Errorf("Assembler is not initialized")
	}
	a.Log.Infof("Current samples folder: %v", folder)
	images, annotations, err := ListSamples(folder)
	if err != nil {
		return err
	}
	if err := checkPairing(folder, images, annotations); err != nil {
		return err
	}
	if len(images) == 0 {
		a.Log.Warnf("No samples in %v", folder)
		return nil
	}

	interval := ValidationInterval(len(images), a.opts.ValidFraction)
	for i := range images {
		if stem(images[i]) != stem(annotations[i]) {
			a.Log.Warnf("Pairing '%v' with '%v', which have different names", images[i], annotations[i])
		}
		s, err := a.addPair(folder, images[i], annotations[i], i, interval)
		if err != nil {
			return err
		}
		for _, obs := range a.opts.Observers {
			if err := obs.AddSample(s); err != nil {
				return err
			}
		}
		if a.counter%progressInterval == 0 {
			a.Log.Infof("Processed %v samples", a.counter)
		}
	}
	a.Log.Infof("Processed %v samples (%v from %v)", a.counter, len(images), folder)
	return nil
}

func (a *Assembler) addPair(folder, imagePath, annotationPath string, localIndex, interval int) (*Sample, error) {
	id := a.counter
	ext := filepath.Ext(imagePath)
	s := &Sample{
		ID:            id,
		Folder:        folder,
		ImageSrc:      imagePath,
		AnnotationSrc: annotationPath,
		ImageDst:      a.Layout.ObjectPath(id, ext),
		AnnotationDst: a.Layout.ObjectPath(id, AnnotationExtension),
		RelativePath:  RelativeObjectPath(id, ext),
	}
	nImage, err := iox.CopyFile(s.ImageDst, s.ImageSrc)
	if err != nil {
		return nil, err
	}
	nAnnotation, err := iox.CopyFile(s.AnnotationDst, s.AnnotationSrc)
	if err != nil {
		return nil, err
	}
	a.bytesCopied += nImage + nAnnotation

	index := id
	if a.opts.SplitIndex == SplitIndexLocal {
		index = localIndex
	}
	s.Split = ChooseSplit(index, interval)
	dst := a.trainFile
	if s.Split == SplitValid {
		dst = a.validFile
	}
	if _, err := fmt.Fprintf(dst, "%v\n", s.RelativePath); err != nil {
		return nil, err
	}
	if s.Split == SplitValid {
		a.numValid++
	} else {
		a.numTrain++
	}

	ann, err := yolo.ParseFile(s.AnnotationDst)
	if err != nil {
		return nil, err
	}
	s.Annotation = ann
	a.countObjects(s)

	a.counter++
	return s, nil
}

func (a *Assembler) countObjects(s *Sample) {
	for _, bad := range s.Annotation.Invalid {
		a.Log.Warnf("%v: %v", s.AnnotationSrc, bad)
		a.invalidLines++
	}
	for _, box := range s.Annotation.Boxes {
		if box.Class >= len(a.objectsPerClass) {
			a.Log.Warnf("%v: class index %v is not defined (%v classes)", s.AnnotationSrc, box.Class, len(a.objectsPerClass))
			a.unknownClassObjects++
			continue
		}
		a.objectsPerClass[box.Class]++
	}
}

// NumSamples is the number of pairs written so far, which is also the next pair ID
func (a *Assembler) NumSamples() int {
	return a.counter
}

// ClassNames are the class names, ordered by class index
func (a *Assembler) ClassNames() []string {
	return a.classNames
}

// Summary returns the counts of the run so far
func (a *Assembler) Summary() *Summary {
	return &Summary{
		NumSamples:             a.counter,
		NumTrain:               a.numTrain,
		NumValid:               a.numValid,
		ValidFraction:          a.opts.ValidFraction,
		ClassNames:             a.classNames,
		ObjectsPerClass:        append([]int(nil), a.objectsPerClass...),
		UnknownClassObjects:    a.unknownClassObjects,
		InvalidAnnotationLines: a.invalidLines,
		BytesCopied:            a.bytesCopied,
	}
}
