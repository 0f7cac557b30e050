package models

// Status codes are persisted as-is. Each lifecycle is a straight line
// through the codes 0 -> 1 -> 2; CanTransition permits exactly one
// forward step, never skipping or reversing. The engine combines these
// guards with conditional updates so a raced transition fails instead
// of repeating.

// ItemStatus is the lifecycle state of an Item
type ItemStatus int16

const (
	ItemAvailable ItemStatus = 0
	ItemAssigned  ItemStatus = 1
	ItemExported  ItemStatus = 2
)

// CanTransition reports whether moving to the given status is legal
func (s ItemStatus) CanTransition(to ItemStatus) bool {
	return to == s+1 && to <= ItemExported
}

func (s ItemStatus) String() string {
	switch s {
	case ItemAvailable:
		return "Available"
	case ItemAssigned:
		return "Assigned"
	case ItemExported:
		return "Exported"
	}
	return "Unknown"
}

// BoxStatus is the lifecycle state of a Box
type BoxStatus int16

const (
	BoxEmpty    BoxStatus = 0
	BoxSealed   BoxStatus = 1
	BoxExported BoxStatus = 2
)

// CanTransition reports whether moving to the given status is legal
func (s BoxStatus) CanTransition(to BoxStatus) bool {
	return to == s+1 && to <= BoxExported
}

func (s BoxStatus) String() string {
	switch s {
	case BoxEmpty:
		return "Empty"
	case BoxSealed:
		return "Sealed"
	case BoxExported:
		return "Exported"
	}
	return "Unknown"
}

// PalletStatus is the lifecycle state of a Pallet
type PalletStatus int16

const (
	PalletNew      PalletStatus = 0
	PalletComplete PalletStatus = 1
	PalletExported PalletStatus = 2
)

// CanTransition reports whether moving to the given status is legal
func (s PalletStatus) CanTransition(to PalletStatus) bool {
	return to == s+1 && to <= PalletExported
}

func (s PalletStatus) String() string {
	switch s {
	case PalletNew:
		return "New"
	case PalletComplete:
		return "Complete"
	case PalletExported:
		return "Exported"
	}
	return "Unknown"
}

// ExportMode distinguishes box-level from pallet-level export documents
type ExportMode int16

const (
	BoxExport    ExportMode = 0
	PalletExport ExportMode = 1
)

func (m ExportMode) String() string {
	switch m {
	case BoxExport:
		return "BoxExport"
	case PalletExport:
		return "PalletExport"
	}
	return "Unknown"
}
