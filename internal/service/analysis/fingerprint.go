package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

// Fingerprint identifies a normalized deal and grid. Equal inputs always
// produce equal results, so the fingerprint doubles as the cache key.
func Fingerprint(deal models.Deal, spec models.SensitivitySpec) (string, error) {
	payload, err := json.Marshal(struct {
		Deal models.Deal            `json:"deal"`
		Spec models.SensitivitySpec `json:"spec"`
	}{deal, spec})
	if err != nil {
		return "", fmt.Errorf("encode fingerprint payload: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(payload)), nil
}
