package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
)

// How many times a create is retried when two writers race to the same
// custom ID before the conflict is surfaced to the caller.
const customIDAttempts = 3

// NextCustomID computes the next human-readable ID for a prefix, e.g.
// "PRD-004" when products PRD-001 and PRD-003 exist. It scans every
// custom_id sharing the prefix rather than trusting insert order, so
// gaps and out-of-order surrogate keys do not break the sequence.
// Malformed suffixes are skipped.
func NextCustomID(tx *gorm.DB, table, prefix string) (string, error) {
	var ids []string
	if err := tx.Table(table).
		Where("custom_id LIKE ?", prefix+"-%").
		Pluck("custom_id", &ids).Error; err != nil {
		return "", err
	}

	max := 0
	for _, id := range ids {
		suffix := strings.TrimPrefix(id, prefix+"-")
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1), nil
}

// CreateWithCustomID runs create inside a transaction, handing it a freshly
// computed custom ID. Two concurrent writers can compute the same next
// number; the unique index on custom_id fails the loser, which retries with
// a recomputed ID up to customIDAttempts times.
func CreateWithCustomID(db *gorm.DB, table, prefix string, create func(tx *gorm.DB, customID string) error) error {
	var err error
	for attempt := 0; attempt < customIDAttempts; attempt++ {
		err = db.Transaction(func(tx *gorm.DB) error {
			customID, idErr := NextCustomID(tx, table, prefix)
			if idErr != nil {
				return idErr
			}
			return create(tx, customID)
		})
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return apperr.Conflict("could not allocate a unique id, please retry")
}
