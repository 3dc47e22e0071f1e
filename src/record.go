package main

// Record is one flashcard row produced from a single headword group.
// A record is only ever constructed fully populated and is not mutated
// after the parse emits it.
type Record struct {
	ID            int
	Headword      string
	Definitions   []string
	Pronunciation string
	Kana          string
	Conjugation   string
	Segmentation  string
	Level         string
}
