package service

import (
	"sync"

	"github.com/google/uuid"
)

// tenantLocker serializes ingestion per company so two simultaneous uploads
// for the same tenant cannot interleave writes to the normalized table.
type tenantLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

var ingestLocks = &tenantLocker{locks: make(map[uuid.UUID]*sync.Mutex)}

// Acquire blocks until the company's ingestion lock is held and returns the
// release function.
func (l *tenantLocker) Acquire(companyID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[companyID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[companyID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
