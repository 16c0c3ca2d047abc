package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/letshang/internal/common"
)

// storageFault maps repository errors onto the service taxonomy: not-found
// and storage faults pass through, everything else becomes a storage fault.
func storageFault(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrStorageFault) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", common.ErrStorageFault, op, err)
}
