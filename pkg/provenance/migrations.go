package provenance

import (
	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
)

func Migrations(log logs.Log) []migration.Migrator {
	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE sample(
			id INTEGER PRIMARY KEY,
			folder TEXT NOT NULL,
			image_src TEXT NOT NULL,
			annotation_src TEXT NOT NULL,
			image_dst TEXT NOT NULL,
			split TEXT NOT NULL,
			num_objects INT NOT NULL
		);
		CREATE INDEX idx_sample_image_src ON sample (image_src);
	`))

	return migs
}
