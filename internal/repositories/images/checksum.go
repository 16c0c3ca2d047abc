package images

import (
	"bytes"
	"fmt"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/models"
	"golang.org/x/crypto/blake2b"
)

func Checksum(payload []byte) []byte {
	sum := blake2b.Sum256(payload)
	return sum[:]
}

func ensureChecksum(rec *models.ImageRecord) {
	if len(rec.Checksum) == 0 {
		rec.Checksum = Checksum(rec.Payload)
	}
}

func verify(rec *models.ImageRecord) error {
	if !bytes.Equal(rec.Checksum, Checksum(rec.Payload)) {
		return fmt.Errorf("%w: checksum mismatch for image %s", common.ErrStorageFault, rec.ID)
	}
	return nil
}
