package domain

// Tweet is a single text record lifted from a Twitter/X archive export.
// ID is the archive's id_str and stays a string end to end: several of
// them exceed 2^53 and would lose digits as float64.
type Tweet struct {
	ID   string
	Text string
}
