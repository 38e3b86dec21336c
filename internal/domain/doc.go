// Package domain implements the Twisted tornado assessment engine: a
// heuristic calculator that maps a set of atmospheric sounding parameters to
// tornado morphology probabilities, a wind-speed estimate with an Enhanced
// Fujita classification, a convective risk tier, and auxiliary hazard factors.
//
// # Inputs
//
// An [AtmosphericSample] carries the fixed parameter set collected in-game:
// CAPE, SRH, precipitable water, low- and mid-level lapse rates, surface
// temperature and dewpoint, surface and mid-level relative humidity, storm
// speed, and 3km CAPE. STP and VTP may be supplied directly as numeric
// strings; when absent or unparseable they are derived from the other fields
// (see [DeriveIndices]).
//
// Missing or malformed numeric inputs coerce to zero. This is a deliberate
// permissive-default contract inherited from the source data (free-text game
// observations): every function in this package is total — no input, however
// degenerate, produces an error or panic.
//
// # Morphology categories
//
// Probability mass is distributed over seven shape archetypes:
//
//	SIDEWINDER — fast-moving, strongly sheared, dry-side snaking tornado
//	STOVEPIPE  — intense cylindrical tornado in a high-CAPE, steep-lapse airmass
//	WEDGE      — moisture-loaded, rain-fed, slow-moving large tornado
//	DRILLBIT   — violent narrow vortex in dry, fast, extremely sheared flow
//	CONE       — classic balanced supercell tornado
//	ROPE       — weak, low-energy tornado
//	FUNNEL     — marginal rotation that may never reach the ground
//
// Each category accumulates weight from an independent table of threshold
// rules; overlapping thresholds compound rather than exclude each other, so a
// parameter deep inside a category's favorable zone fires several rules.
// Cross-category adjustments then break ties between physically conflicting
// shapes (extreme moisture suppresses the dry archetypes and vice versa).
//
// # Scales
//
// Wind estimates are expressed in mph and classified on the Enhanced Fujita
// ladder (EF0–EF5) using both ends of the estimated range. Risk tiers follow
// the SPC convective outlook naming: TSTM, MRGL, SLGT, ENH, MDT, HIGH.
//
// The engine is a game companion, not a meteorological model; thresholds and
// weights were tuned against recorded gameplay, not against real storms.
package domain
