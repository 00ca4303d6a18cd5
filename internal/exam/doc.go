// Package exam provides types and functions for normalizing exam schedule records.
//
// The exam package turns the free-text Norwegian date descriptions found on exam
// schedule pages ("Dato: 3. desember 2024 kl. 09:00", "Fra 3. desember til 5. desember 2024",
// "Innlevering: 21. november 2024 kl. 13:00") into canonical timestamps. Parsing
// never fails: lines the rules cannot read contribute nothing, and the caller
// decides how to render what was recognized (split start/end columns or a single
// merged column).
//
// Each record is assigned a deterministic SHA1-based ID generated from its course
// code, exam type and location, enabling change detection between conversion runs.
package exam
