package dataset

// Category partitions examples for grouped statistics.
type Category string

const (
	CategoryNormal Category = "normal"
	CategoryHard   Category = "hard"
)

// Example is one immutable benchmark item.
type Example struct {
	ExampleID     string   `json:"example_id"`
	Category      Category `json:"category"`
	Prompt        string   `json:"prompt"`
	Reference     string   `json:"reference"`
	MediaFilename string   `json:"media_filename,omitempty"`
	MediaURL      string   `json:"media_url,omitempty"`
}

// Generation is a model's produced answer for one example.
type Generation struct {
	ExampleID  string `json:"example_id"`
	Generation string `json:"generation"`
}

// JudgedRecord carries a binary verdict for one example. Records are
// appended once and never mutated.
type JudgedRecord struct {
	ExampleID   string   `json:"example_id"`
	Category    Category `json:"category"`
	Prompt      string   `json:"prompt"`
	Reference   string   `json:"reference"`
	Generation  string   `json:"generation"`
	Score       int      `json:"score"`
	Explanation string   `json:"explanation"`
}
