package packaging

import (
	"strings"
)

// gs1Separator is the ASCII Group-Separator control byte delimiting
// application-identifier segments in GS1 barcodes.
const gs1Separator = "\x1d"

// CleanBarcode strips a trailing GS1 application-identifier suffix before
// the barcode is embedded in an export document.
//
// Primary rule: truncate at the first 0x1D separator byte. Fallback for
// barcodes whose separator did not survive transport: truncate at the
// first occurrence of "93" when it sits at index 20 or later, a rough
// stand-in for an AI "93" reference sequence, kept as-is for
// compatibility with previously generated documents.
func CleanBarcode(barcode string) string {
	if barcode == "" {
		return barcode
	}

	if pos := strings.Index(barcode, gs1Separator); pos != -1 {
		return barcode[:pos]
	}

	if pos := strings.Index(barcode, "93"); pos >= 20 {
		return barcode[:pos]
	}

	return barcode
}
