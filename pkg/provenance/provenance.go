// Package provenance records where every sample of a generated dataset came from,
// so that a bad label found during training can be traced back to its batch.
package provenance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyclopcam/darknetds/pkg/dataset"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"gorm.io/gorm"
)

// Sample is one row of the ledger. ID is the pair ID, which is also the output file stem.
type Sample struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	Folder        string `json:"folder"`
	ImageSrc      string `json:"imageSrc"`
	AnnotationSrc string `json:"annotationSrc"`
	ImageDst      string `json:"imageDst"` // Relative to the output root, eg data/obj/12.jpg
	Split         string `json:"split"`
	NumObjects    int    `json:"numObjects"`
}

func (Sample) TableName() string {
	return "sample"
}

// Ledger is a SQLite database of samples.
// Rows are written inside a transaction that is committed by Flush or Close.
type Ledger struct {
	Log logs.Log
	DB  *gorm.DB
	tx  *gorm.DB
}

// Open creates a new ledger at filename. An existing file is replaced,
// because pair IDs are reassigned on every run.
func Open(log logs.Log, filename string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, err
	}
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("Failed to delete old provenance database %v: %w", filename, err)
	}
	log.Infof("Recording sample provenance in %v", filename)
	db, err := dbh.OpenDB(log, dbh.MakeSqliteConfig(filename), Migrations(log), 0)
	if err != nil {
		return nil, fmt.Errorf("Failed to open database %v: %w", filename, err)
	}
	return &Ledger{
		Log: log,
		DB:  db,
	}, nil
}

// AddSample satisfies dataset.SampleObserver
func (l *Ledger) AddSample(s *dataset.Sample) error {
	if l.tx == nil {
		l.tx = l.DB.Begin()
		if l.tx.Error != nil {
			err := l.tx.Error
			l.tx = nil
			return err
		}
	}
	numObjects := 0
	if s.Annotation != nil {
		numObjects = len(s.Annotation.Boxes)
	}
	row := &Sample{
		ID:            int64(s.ID),
		Folder:        s.Folder,
		ImageSrc:      s.ImageSrc,
		AnnotationSrc: s.AnnotationSrc,
		ImageDst:      s.RelativePath,
		Split:         string(s.Split),
		NumObjects:    numObjects,
	}
	if err := l.tx.Create(row).Error; err != nil {
		return fmt.Errorf("Failed to record sample %v: %w", s.ID, err)
	}
	return nil
}

// Flush commits the rows added so far
func (l *Ledger) Flush() error {
	if l.tx == nil {
		return nil
	}
	err := l.tx.Commit().Error
	l.tx = nil
	return err
}

// Close commits outstanding rows and closes the database
func (l *Ledger) Close() error {
	errFlush := l.Flush()
	sqlDB, err := l.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	return errFlush
}

// Get returns the sample with the given pair ID
func (l *Ledger) Get(id int64) (*Sample, error) {
	s := &Sample{}
	if err := l.DB.Where("id = ?", id).First(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// FindBySource returns the sample that was copied from imageSrc
func (l *Ledger) FindBySource(imageSrc string) (*Sample, error) {
	s := &Sample{}
	if err := l.DB.Where("image_src = ?", imageSrc).First(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// CountBySplit returns the number of samples in each split
func (l *Ledger) CountBySplit() (map[string]int64, error) {
	type splitCount struct {
		Split string
		N     int64
	}
	rows := []splitCount{}
	if err := l.DB.Model(&Sample{}).Select("split, COUNT(*) AS n").Group("split").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.Split] = r.N
	}
	return counts, nil
}
