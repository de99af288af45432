package calculation

import (
	"errors"
	"fmt"

	"github.com/holdi/holdi/internal/domain"
)

// ErrMissingAssetReturn is matched by every MissingAssetReturnError.
var ErrMissingAssetReturn = errors.New("missing asset return")

// MissingAssetReturnError reports an allocation entry with no expected return.
type MissingAssetReturnError struct {
	Asset string
}

func (e *MissingAssetReturnError) Error() string {
	return fmt.Sprintf("return data for %q not found", e.Asset)
}

// Is makes errors.Is(err, ErrMissingAssetReturn) succeed.
func (e *MissingAssetReturnError) Is(target error) bool {
	return target == ErrMissingAssetReturn
}

// WeightedReturn computes the allocation-weighted annual return
// Σ allocation[a] × returns[a].
//
// Assets are summed in sorted order so repeated calls give bit-identical
// results. An asset absent from the returns table aborts the computation with
// a *MissingAssetReturnError; a partial sum is never returned.
func WeightedReturn(returns domain.ReturnTable, allocation domain.AllocationMap) (float64, error) {
	var weighted float64
	for _, asset := range allocation.Assets() {
		rate, ok := returns[asset]
		if !ok {
			return 0, &MissingAssetReturnError{Asset: asset}
		}
		weighted += allocation[asset] * rate
	}
	return weighted, nil
}
