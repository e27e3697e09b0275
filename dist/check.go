package dist

import (
	"fmt"

	"github.com/mvnup/mvnup"
)

type VerifyConfig struct {
	VerifyXXH64Digest  bool
	VerifySHA256Digest bool
}

// Check verifies that the given version is installed, was installed from the
// same distribution configuration, and (optionally) that its launcher digests
// still match.
func Check(inv *mvnup.Inventory, version, distID string, cfg VerifyConfig) error {
	entry, err := inv.Get(version)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("maven %s is not installed", version)
	}

	if distID != "" && entry.DistID != "" && entry.DistID != distID {
		return fmt.Errorf("maven %s was installed with a different distribution configuration", version)
	}

	return entry.Verify(cfg.VerifyXXH64Digest, cfg.VerifySHA256Digest)
}
