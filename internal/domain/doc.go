// Package domain models US wildfire incident records and their
// classification rules.
//
// # Data Source
//
// Incidents originate from a flat CSV export of a federal wildfire occurrence
// database joined with pre-incident weather observations. Each row describes
// one fire: where it was discovered (two-letter state code), when (discovery
// year and month), its reported cause, its final size in acres, its size
// class, and four weather variables (temperature, wind speed, humidity,
// precipitation) each sampled at four reference points: 30, 15, and 7 days
// before discovery, and at containment.
//
// # Conventions
//
// Size class:
//
//	A single letter A through G, smallest to largest, following the NWCG
//	fire size classification. Rows carrying any other value are malformed
//	and dropped during validation.
//
// Missing weather measurements:
//
//	The upstream join writes -1 where no observation exists. Validation
//	replaces the sentinel with an explicit nil so no downstream computation
//	can mistake it for a real reading.
//
// Cause:
//
//	A free-text label such as "Lightning", "Arson", or "Debris Burning".
//	Rows with an empty cause are kept and bucketed as "Unknown".
//
// # Derived Classification
//
// Three fields are derived once at load time, never stored in the source:
//
//   - Region: one of four US Census macro-regions (West, South, Midwest,
//     Northeast) looked up from the state code; unmapped codes become "Other".
//   - Season: one of four seasons looked up from the discovery month;
//     unrecognized months become "Unknown".
//   - HumanCaused: true when the cause label belongs to the configured set
//     of human-attributable causes.
//
// All three lookups are driven by a Mappings value so the partitions can be
// supplied and tested as configuration rather than inlined logic. See
// DefaultMappings for the compiled-in tables and LoadMappings for the YAML
// override.
package domain
