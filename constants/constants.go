// Package constants holds the well-known block and property names used by
// Maestro chemistry files. None of these are enforced by the parser or
// serializer; they exist purely for consumers that know they are reading
// structures rather than arbitrary property trees.
package constants

const (
	// FormatVersion is the header property every Maestro file starts
	// with, e.g. s_m_m2io_version = "2.0.0".
	FormatVersion = "s_m_m2io_version"

	// CurrentVersion is the format version string this module's Writer
	// emits in the header block.
	CurrentVersion = "2.0.0"

	// CtBlock is the outer block name holding one chemical structure.
	CtBlock = "f_m_ct"
	CtTitle = "s_m_title"

	// AtomBlock is the indexed block of per-atom columns within a
	// structure block.
	AtomBlock         = "m_atom"
	AtomAtomicNumber  = "i_m_atomic_number"
	AtomXCoord        = "r_m_x_coord"
	AtomYCoord        = "r_m_y_coord"
	AtomZCoord        = "r_m_z_coord"
	AtomFormalCharge  = "i_m_formal_charge"
	AtomPartialCharge = "r_m_charge1"

	// BondBlock is the indexed block of per-bond columns within a
	// structure block.
	BondBlock = "m_bond"
	BondAtom1 = "i_m_from"
	BondAtom2 = "i_m_to"
	BondOrder = "i_m_order"
)
