package memory

import (
	"fmt"

	"github.com/SscSPs/posync/internal/apperrors"
)

// KeyedRecords holds records addressed by a unique key while remembering first-insertion order.
type KeyedRecords[T any] struct {
	order    []string
	byKey    map[string]T
	validate func(T) error
}

// NewKeyedRecords creates an empty keyed collection.
func NewKeyedRecords[T any](validate func(T) error) *KeyedRecords[T] {
	return &KeyedRecords[T]{byKey: make(map[string]T), validate: validate}
}

// Len returns the number of keys.
func (k *KeyedRecords[T]) Len() int {
	return len(k.order)
}

// Upsert validates and stores record under key. An existing key keeps its position.
// It reports whether the key was newly created.
func (k *KeyedRecords[T]) Upsert(key string, record T) (bool, error) {
	if k.validate != nil {
		if err := k.validate(record); err != nil {
			return false, err
		}
	}
	_, exists := k.byKey[key]
	if !exists {
		k.order = append(k.order, key)
	}
	k.byKey[key] = record
	return !exists, nil
}

// Get returns the record stored under key.
func (k *KeyedRecords[T]) Get(key string) (T, error) {
	record, ok := k.byKey[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", apperrors.ErrKeyNotFound, key)
	}
	return record, nil
}

// Delete removes key and returns its record.
func (k *KeyedRecords[T]) Delete(key string) (T, error) {
	record, ok := k.byKey[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", apperrors.ErrKeyNotFound, key)
	}
	delete(k.byKey, key)
	for i, existing := range k.order {
		if existing == key {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
	return record, nil
}

// All returns the records in first-insertion order. The result is never nil.
func (k *KeyedRecords[T]) All() []T {
	out := make([]T, 0, len(k.order))
	for _, key := range k.order {
		out = append(out, k.byKey[key])
	}
	return out
}

// Clear removes every key.
func (k *KeyedRecords[T]) Clear() {
	k.order = nil
	k.byKey = make(map[string]T)
}
