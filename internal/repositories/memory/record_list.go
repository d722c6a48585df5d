package memory

import (
	"fmt"

	"github.com/SscSPs/posync/internal/apperrors"
)

// RecordList is an ordered, position-addressed list of records of one type.
// It is not safe for concurrent use; RecordStore guards every list with its own lock.
type RecordList[T any] struct {
	items    []T
	validate func(T) error
}

// NewRecordList creates an empty list that runs validate on every added or edited record.
// A nil validate accepts everything.
func NewRecordList[T any](validate func(T) error) *RecordList[T] {
	return &RecordList[T]{validate: validate}
}

// Len returns the number of records.
func (l *RecordList[T]) Len() int {
	return len(l.items)
}

// All returns a copy of the records in order. The result is never nil.
func (l *RecordList[T]) All() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the record at index.
func (l *RecordList[T]) At(index int) (T, error) {
	if err := l.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return l.items[index], nil
}

// Add validates and appends a record, returning its index.
func (l *RecordList[T]) Add(record T) (int, error) {
	if err := l.check(record); err != nil {
		return -1, err
	}
	l.items = append(l.items, record)
	return len(l.items) - 1, nil
}

// Edit validates and replaces the record at index.
func (l *RecordList[T]) Edit(index int, record T) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	if err := l.check(record); err != nil {
		return err
	}
	l.items[index] = record
	return nil
}

// Remove deletes the record at index and returns it. Later records shift down by one.
func (l *RecordList[T]) Remove(index int) (T, error) {
	var zero T
	if err := l.checkIndex(index); err != nil {
		return zero, err
	}
	removed := l.items[index]
	copy(l.items[index:], l.items[index+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	return removed, nil
}

// InsertBelow inserts an unvalidated placeholder directly after index and returns the new position.
// An index of -1 inserts at the top, which lets an empty list receive its first placeholder.
func (l *RecordList[T]) InsertBelow(index int, placeholder T) (int, error) {
	if index != -1 {
		if err := l.checkIndex(index); err != nil {
			return -1, err
		}
	}
	pos := index + 1
	var zero T
	l.items = append(l.items, zero)
	copy(l.items[pos+1:], l.items[pos:])
	l.items[pos] = placeholder
	return pos, nil
}

// Replace swaps the whole content without validation. Used when restoring an already checked snapshot.
func (l *RecordList[T]) Replace(records []T) {
	l.items = make([]T, len(records))
	copy(l.items, records)
}

// Clear removes every record.
func (l *RecordList[T]) Clear() {
	l.items = nil
}

func (l *RecordList[T]) check(record T) error {
	if l.validate == nil {
		return nil
	}
	return l.validate(record)
}

func (l *RecordList[T]) checkIndex(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("%w: index %d, length %d", apperrors.ErrIndexOutOfRange, index, len(l.items))
	}
	return nil
}
