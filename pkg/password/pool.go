package password

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool limita cuántas derivaciones PBKDF2 corren a la vez.
// Una ráfaga de registros espera turno en lugar de acaparar todos los núcleos.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool crea un pool con workers derivaciones simultáneas (<= 0 usa runtime.NumCPU()).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Hash deriva el secreto almacenado de plain dentro del pool.
func (p *Pool) Hash(ctx context.Context, plain string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)
	return Derive(plain)
}

// Compare verifica plain contra stored dentro del pool. Devuelve error solo si ctx se cancela esperando turno.
func (p *Pool) Compare(ctx context.Context, plain, stored string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)
	return Verify(plain, stored), nil
}
