package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observed() (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core)), logs
}

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger_Trace(t *testing.T) {
	l, logs := observed()
	ctx := context.Background()

	l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	if logs.Len() != 0 {
		t.Fatalf("record-not-found should be silent, got %v", logs.All())
	}

	l.Trace(ctx, time.Now(), sqlFn, errors.New("deadlock"))
	if got := logs.FilterMessage("query failed").Len(); got != 1 {
		t.Fatalf("query failed entries = %d, want 1", got)
	}

	l.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)
	if got := logs.FilterMessage("slow query").Len(); got != 1 {
		t.Fatalf("slow query entries = %d, want 1", got)
	}

	// fast successful queries are only traced at Info
	l.Trace(ctx, time.Now(), sqlFn, nil)
	if got := logs.FilterMessage("query").Len(); got != 0 {
		t.Fatalf("unexpected trace at warn level: %v", logs.All())
	}
	l.LogMode(gormlogger.Info).Trace(ctx, time.Now(), sqlFn, nil)
	if got := logs.FilterMessage("query").Len(); got != 1 {
		t.Fatalf("query entries at info = %d, want 1", got)
	}
}

func TestGormLogger_Levels(t *testing.T) {
	l, logs := observed()
	ctx := context.Background()

	l.Info(ctx, "hidden %d", 1)
	l.Warn(ctx, "shown %d", 2)
	if logs.Len() != 1 || logs.All()[0].Message != "shown 2" {
		t.Fatalf("unexpected entries: %v", logs.All())
	}

	silent := l.LogMode(gormlogger.Silent)
	silent.Error(ctx, "dropped")
	silent.Trace(ctx, time.Now(), sqlFn, errors.New("x"))
	if logs.Len() != 1 {
		t.Fatalf("silent mode logged: %v", logs.All())
	}
}
