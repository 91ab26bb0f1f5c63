package dataset

import (
	"github.com/cyclopcam/darknetds/pkg/kibi"
	"github.com/cyclopcam/logs"
)

// Summary describes a finished run
type Summary struct {
	NumSamples             int
	NumTrain               int
	NumValid               int
	ValidFraction          float64 // Configured, not measured
	ClassNames             []string
	ObjectsPerClass        []int // Indexed by class
	UnknownClassObjects    int   // Boxes whose class index is out of range
	InvalidAnnotationLines int
	BytesCopied            int64
}

func (s *Summary) Log(log logs.Log) {
	log.Infof("Total number of samples: %v", s.NumSamples)
	log.Infof("Total number of samples to train: %v", s.NumTrain)
	log.Infof("Total number of samples to validate: %v", s.NumValid)
	log.Infof("Copied %v", kibi.FormatBytes(s.BytesCopied))
	log.Infof("Train - Validation split %%: Training set %.1f - Validation set %.1f", (1-s.ValidFraction)*100, s.ValidFraction*100)
	for i, name := range s.ClassNames {
		log.Infof("Class %v '%v': %v objects", i, name, s.ObjectsPerClass[i])
	}
	if s.UnknownClassObjects != 0 {
		log.Warnf("%v objects have an undefined class index", s.UnknownClassObjects)
	}
	if s.InvalidAnnotationLines != 0 {
		log.Warnf("%v annotation lines could not be parsed", s.InvalidAnnotationLines)
	}
}
