package flatfile

import (
	"context"
	"sync"

	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner da atomicidad a la pareja follow-up + cambio de estado sobre el
// almacén plano: serializa las "transacciones" entre sí, toma una copia de
// las colecciones afectadas y la restaura (memoria y disco) si fn falla.
type TxRunner struct {
	txMu  sync.Mutex
	store *Store
}

// NewTxRunner construye el runner con el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con los repos del almacén; si fn devuelve error, revierte
// actividades y follow-ups al estado previo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	activities repository.ActivityRepository,
	followups repository.FollowupRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.store.takeSnapshot()
	if err := fn(NewActivityRepository(r.store), NewFollowupRepository(r.store)); err != nil {
		if restoreErr := r.store.restoreSnapshot(snap); restoreErr != nil {
			return restoreErr
		}
		return err
	}
	return nil
}
