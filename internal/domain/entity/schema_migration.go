package entity

import "time"

// SchemaMigration records the schema version applied to the database
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for SchemaMigration
func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
