//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

// Package mysql provides a MySQL-backed implementation of the execution
// recorder. Records are append-only; the table has no update or delete path.
package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trpc.group/trpc-go/trpc-flow-go/recorder"
)

// executionRecord is the gorm row model. Structured fields are serialized
// as JSON columns.
type executionRecord struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	WorkflowID    string    `gorm:"column:workflow_id;type:varchar(64);index"`
	UserID        string    `gorm:"column:user_id;type:varchar(64)"`
	Models        string    `gorm:"column:models;type:varchar(512)"`
	Inputs        string    `gorm:"column:inputs;type:json"`
	Results       string    `gorm:"column:results;type:json"`
	OutputFormats string    `gorm:"column:output_formats;type:json"`
	DocumentURLs  string    `gorm:"column:document_urls;type:json"`
	APIResponses  string    `gorm:"column:api_responses;type:json"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
}

// TableName implements the gorm table naming interface.
func (executionRecord) TableName() string {
	return "execution_records"
}

// options configures the Recorder.
type options struct {
	db *gorm.DB
}

// Option configures the Recorder.
type Option func(*options)

// WithDB injects an existing gorm DB instead of opening one from a DSN.
func WithDB(db *gorm.DB) Option {
	return func(o *options) {
		o.db = db
	}
}

// Recorder is a MySQL implementation of recorder.Recorder.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder opens the database and ensures the records table exists.
func NewRecorder(dsn string, opts ...Option) (*Recorder, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	db := o.db
	if db == nil {
		if dsn == "" {
			return nil, errors.New("mysql recorder: DSN is empty")
		}
		var err error
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("mysql recorder: open database: %w", err)
		}
	}
	if err := db.AutoMigrate(&executionRecord{}); err != nil {
		return nil, fmt.Errorf("mysql recorder: migrate: %w", err)
	}
	return &Recorder{db: db}, nil
}

// Record appends one execution record.
func (r *Recorder) Record(ctx context.Context, record *recorder.Record) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("mysql recorder: insert record: %w", err)
	}
	return nil
}

// ListByWorkflow returns the records of one workflow, newest first.
func (r *Recorder) ListByWorkflow(ctx context.Context, workflowID string) ([]*recorder.Record, error) {
	var rows []executionRecord
	err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("mysql recorder: list records: %w", err)
	}
	records := make([]*recorder.Record, 0, len(rows))
	for i := range rows {
		record, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func toRow(record *recorder.Record) (*executionRecord, error) {
	row := &executionRecord{
		ID:         record.ID,
		WorkflowID: record.WorkflowID,
		UserID:     record.UserID,
		Models:     record.Models,
		CreatedAt:  record.CreatedAt,
	}
	for _, field := range []struct {
		name   string
		value  any
		target *string
	}{
		{"inputs", record.Inputs, &row.Inputs},
		{"results", record.Results, &row.Results},
		{"output_formats", record.OutputFormats, &row.OutputFormats},
		{"document_urls", record.DocumentURLs, &row.DocumentURLs},
		{"api_responses", record.APIResponses, &row.APIResponses},
	} {
		data, err := json.Marshal(field.value)
		if err != nil {
			return nil, fmt.Errorf("mysql recorder: encode %s: %w", field.name, err)
		}
		*field.target = string(data)
	}
	return row, nil
}

func fromRow(row *executionRecord) (*recorder.Record, error) {
	record := &recorder.Record{
		ID:         row.ID,
		WorkflowID: row.WorkflowID,
		UserID:     row.UserID,
		Models:     row.Models,
		CreatedAt:  row.CreatedAt,
	}
	for _, field := range []struct {
		name   string
		data   string
		target any
	}{
		{"inputs", row.Inputs, &record.Inputs},
		{"results", row.Results, &record.Results},
		{"output_formats", row.OutputFormats, &record.OutputFormats},
		{"document_urls", row.DocumentURLs, &record.DocumentURLs},
		{"api_responses", row.APIResponses, &record.APIResponses},
	} {
		if field.data == "" {
			continue
		}
		if err := json.Unmarshal([]byte(field.data), field.target); err != nil {
			return nil, fmt.Errorf("mysql recorder: decode %s: %w", field.name, err)
		}
	}
	return record, nil
}
