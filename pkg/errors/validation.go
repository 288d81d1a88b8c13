package errors

// ValidateLabel checks that label addresses one of n vertices.
func ValidateLabel(label, n int) error {
	if label < 0 || label >= n {
		return New(ErrCodeInvalidIndex, "label %d out of range [0, %d)", label, n)
	}
	return nil
}

// MaxSignatureDraws bounds the signatures a random graph may draw per peer.
const MaxSignatureDraws = 1 << 16

// ValidateSigRange validates the parameters of a random signature graph.
//
// The validation rules:
//   - peer count must not be negative
//   - sigMin must not be negative
//   - sigMin must not exceed sigMax
//   - sigMax must not exceed MaxSignatureDraws
func ValidateSigRange(peers, sigMin, sigMax int) error {
	if peers < 0 {
		return New(ErrCodeInvalidInput, "peer count cannot be negative (got %d)", peers)
	}
	if sigMin < 0 {
		return New(ErrCodeInvalidInput, "minimum signatures cannot be negative (got %d)", sigMin)
	}
	if sigMin > sigMax {
		return New(ErrCodeInvalidInput, "minimum signatures %d exceeds maximum %d", sigMin, sigMax)
	}
	if sigMax > MaxSignatureDraws {
		return New(ErrCodeInvalidInput, "maximum signatures %d exceeds limit %d", sigMax, MaxSignatureDraws)
	}
	return nil
}

// ValidatePermutation checks that order lists every label in [0, n) exactly once.
// Out-of-range entries are reported as ErrCodeInvalidIndex, repeats and
// length mismatches as ErrCodeInvalidInput.
func ValidatePermutation(order []int, n int) error {
	if len(order) != n {
		return New(ErrCodeInvalidInput, "visit order has %d entries, graph has %d vertices", len(order), n)
	}
	seen := make([]bool, n)
	for _, l := range order {
		if err := ValidateLabel(l, n); err != nil {
			return err
		}
		if seen[l] {
			return New(ErrCodeInvalidInput, "visit order repeats label %d", l)
		}
		seen[l] = true
	}
	return nil
}
