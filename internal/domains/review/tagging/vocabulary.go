package tagging

// DefaultVocabulary is the fixed set of fitness/review keywords a review text
// is matched against. Injected into the extractor so alternative domain
// vocabularies can be swapped in without touching extraction semantics.
var DefaultVocabulary = []string{
	"excellent",
	"great",
	"amazing",
	"helpful",
	"informative",
	"practical",
	"beginner",
	"advanced",
	"easy",
	"difficult",
	"comprehensive",
	"detailed",
	"motivation",
	"inspiring",
	"effective",
	"results",
	"workout",
	"exercise",
	"nutrition",
	"diet",
	"health",
	"strength",
	"cardio",
	"flexibility",
}
