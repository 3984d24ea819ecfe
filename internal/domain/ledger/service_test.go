package ledger

import (
	"errors"
	"testing"
	"time"
)

func entryFixture() Entry {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return Entry{
		EmployeeID:  "e1",
		MetricKey:   "output",
		Value:       42,
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 0, 7),
		SourceType:  SourceManualAdmin,
	}
}

func TestValidateEntryAcceptsWellFormed(t *testing.T) {
	if err := validateEntry(entryFixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateEntryRejectsInvertedPeriod(t *testing.T) {
	entry := entryFixture()
	entry.PeriodStart, entry.PeriodEnd = entry.PeriodEnd, entry.PeriodStart
	if err := validateEntry(entry); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestValidateEntryRejectsUnknownSource(t *testing.T) {
	entry := entryFixture()
	entry.SourceType = "guesswork"
	if err := validateEntry(entry); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestValidateEntryRejectsBlankMetricKey(t *testing.T) {
	entry := entryFixture()
	entry.MetricKey = "   "
	if err := validateEntry(entry); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}
