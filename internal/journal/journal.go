// Package journal keeps a local sqlite log of every successful capture.
// The Markdown group files remain the source of truth; the journal only
// powers cross-group activity views, so journal failures are logged and
// never abort a capture.
package journal

import (
	"fmt"
	"slices"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Journal struct {
	db *gorm.DB
}

// CaptureRecord is one journaled capture.
type CaptureRecord struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	GroupName string
	Title     string
	Command   string
	Directory string
}

// Open opens (creating if needed) the journal database at dbFilePath.
// Pass ":memory:" for an ephemeral journal in tests.
func Open(dbFilePath string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open capture journal: %w", err)
	}

	if err := db.AutoMigrate(&CaptureRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate capture journal: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record journals one capture. For session imports the commands are already
// joined into a single newline-separated string by the caller.
func (j *Journal) Record(groupName, title, command, directory string) (*CaptureRecord, error) {
	record := CaptureRecord{
		GroupName: groupName,
		Title:     title,
		Command:   command,
		Directory: directory,
	}

	result := j.db.Create(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	return &record, nil
}

// Recent returns the latest captures across all groups, oldest first.
// An empty groupName matches every group.
func (j *Journal) Recent(groupName string, limit int) ([]CaptureRecord, error) {
	var records []CaptureRecord
	db := j.db
	if groupName != "" {
		db = db.Where("group_name = ?", groupName)
	}
	result := db.Order("created_at desc").Limit(limit).Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	slices.Reverse(records)
	return records, nil
}
