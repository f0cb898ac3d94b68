package quizgen

// DefaultFallback is the generic distractor pool used when a batch
// cannot supply three distinct wrong translations on its own (e.g. two
// batch words sharing a translation). Common-noun translations that are
// plausible for any beginner word list.
var DefaultFallback = []string{
	"house",
	"water",
	"bread",
	"road",
	"mountain",
	"friend",
	"morning",
	"horse",
	"book",
	"sky",
	"winter",
	"family",
}
